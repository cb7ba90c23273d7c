package domain

import (
	"testing"
	"time"
)

func TestParseCaptureDatePlainSeconds(t *testing.T) {
	parsed, ok := ParseCaptureDate("2009-07-14 16:02:11")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2009, 7, 14, 16, 2, 11, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("got %v, want %v", parsed, want)
	}
}

func TestParseCaptureDateFractionalSeconds(t *testing.T) {
	parsed, ok := ParseCaptureDate("2009-07-14 16:02:11.503")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if parsed.Year() != 2009 || parsed.Second() != 11 {
		t.Fatalf("unexpected parse result: %v", parsed)
	}
}

func TestParseCaptureDateMalformed(t *testing.T) {
	for _, value := range []string{"", "not-a-date", "2009/07/14", "2009-07-14"} {
		if _, ok := ParseCaptureDate(value); ok {
			t.Fatalf("expected %q to fail", value)
		}
	}
}

func TestLocationPrefersDedicatedColumns(t *testing.T) {
	lat, lon := 1.5, 2.5
	record := PhotoRecord{
		GPS: &Coordinate{Latitude: 48.1, Longitude: 11.6},
		Capture: CaptureMetadata{
			Latitude:  &lat,
			Longitude: &lon,
		},
	}

	loc, ok := record.Location()
	if !ok {
		t.Fatal("expected a location")
	}
	if loc.Latitude != 48.1 || loc.Longitude != 11.6 {
		t.Fatalf("dedicated columns should win, got %+v", loc)
	}
}

func TestLocationFallsBackToCaptureMetadata(t *testing.T) {
	lat, lon := 48.1, 11.6
	record := PhotoRecord{
		Capture: CaptureMetadata{Latitude: &lat, Longitude: &lon},
	}

	loc, ok := record.Location()
	if !ok {
		t.Fatal("expected a location")
	}
	if loc.Latitude != 48.1 || loc.Longitude != 11.6 {
		t.Fatalf("got %+v", loc)
	}
}

func TestLocationRequiresBothCoordinates(t *testing.T) {
	lat := 48.1
	record := PhotoRecord{
		Capture: CaptureMetadata{Latitude: &lat},
	}
	if _, ok := record.Location(); ok {
		t.Fatal("latitude alone should not yield a location")
	}
}

func TestCamera(t *testing.T) {
	cameraMake, cameraModel := "Canon", "EOS 5D"
	cases := []struct {
		name   string
		record PhotoRecord
		want   string
	}{
		{"both", PhotoRecord{Capture: CaptureMetadata{CameraMake: &cameraMake, CameraModel: &cameraModel}}, "Canon EOS 5D"},
		{"make only", PhotoRecord{Capture: CaptureMetadata{CameraMake: &cameraMake}}, "Canon"},
		{"model only", PhotoRecord{Capture: CaptureMetadata{CameraModel: &cameraModel}}, "EOS 5D"},
		{"neither", PhotoRecord{}, ""},
	}
	for _, tc := range cases {
		if got := tc.record.Camera(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
