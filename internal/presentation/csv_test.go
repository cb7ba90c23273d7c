package presentation

import (
	"bytes"
	"encoding/csv"
	"testing"

	"apextract/internal/domain"
)

func TestWriteMetadataCSV(t *testing.T) {
	cameraMake := "Canon"
	iso := int64(400)
	records := []domain.PhotoRecord{
		{
			UUID:        "abc",
			Name:        "IMG_0001",
			Filename:    "IMG_0001.JPG",
			CaptureDate: "2009-07-14 16:02:11",
			Width:       4000,
			Height:      3000,
			Capture:     domain.CaptureMetadata{CameraMake: &cameraMake, ISO: &iso},
			GPS:         &domain.Coordinate{Latitude: 48.1, Longitude: 11.6},
			Locator:     domain.SourceLocator{RelativePath: "2009/IMG_0001.JPG"},
		},
		{UUID: "def"},
	}

	var buf bytes.Buffer
	if err := WriteMetadataCSV(&buf, records); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	header, first, second := rows[0], rows[1], rows[2]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %q", name)
		return -1
	}

	if first[col("uuid")] != "abc" || first[col("camera_make")] != "Canon" || first[col("iso")] != "400" {
		t.Fatalf("first row: %v", first)
	}
	if first[col("latitude")] != "48.1" {
		t.Fatalf("latitude: got %q", first[col("latitude")])
	}
	if second[col("camera_make")] != "" || second[col("latitude")] != "" {
		t.Fatalf("unset fields must stay empty: %v", second)
	}
}

func TestWriteYearReportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYearReportCSV(&buf, map[int]int{2009: 100, 2007: 50}); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "2007" || rows[1][1] != "50" {
		t.Fatalf("rows must sort by year ascending: %v", rows)
	}
	if rows[2][0] != "2009" || rows[2][1] != "100" {
		t.Fatalf("got %v", rows)
	}
}
