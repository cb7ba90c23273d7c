package app

import (
	"testing"
	"time"

	"apextract/internal/domain"
)

func TestAdapterTruncatesRationals(t *testing.T) {
	aperture, focal, bias := 2.8, 24.0, -0.3
	record := domain.PhotoRecord{
		Capture: domain.CaptureMetadata{
			Aperture:     &aperture,
			FocalLength:  &focal,
			ExposureBias: &bias,
		},
	}

	payload := Adapter{}.Adapt(record)
	if payload == nil {
		t.Fatal("expected a payload")
	}

	if *payload.FNumber != (domain.Rational{Numerator: 28, Denominator: 10}) {
		t.Errorf("f-number: got %+v", *payload.FNumber)
	}
	if *payload.FocalLength != (domain.Rational{Numerator: 240, Denominator: 10}) {
		t.Errorf("focal length: got %+v", *payload.FocalLength)
	}
	if *payload.ExposureBias != (domain.Rational{Numerator: -30, Denominator: 100}) {
		t.Errorf("exposure bias: got %+v", *payload.ExposureBias)
	}
}

func TestAdapterCaptureDate(t *testing.T) {
	record := domain.PhotoRecord{CaptureDate: "2009-07-14 16:02:11"}

	payload := Adapter{}.Adapt(record)
	if payload == nil || payload.DateTime == nil {
		t.Fatal("expected a timestamp")
	}
	want := time.Date(2009, 7, 14, 16, 2, 11, 0, time.UTC)
	if !payload.DateTime.Equal(want) {
		t.Fatalf("got %v, want %v", payload.DateTime, want)
	}
}

func TestAdapterOmitsUnparseableDate(t *testing.T) {
	iso := int64(400)
	record := domain.PhotoRecord{
		CaptureDate: "garbage",
		Capture:     domain.CaptureMetadata{ISO: &iso},
	}

	payload := Adapter{}.Adapt(record)
	if payload == nil {
		t.Fatal("expected a payload, ISO is set")
	}
	if payload.DateTime != nil {
		t.Fatal("unparseable date must omit the timestamp tags")
	}
	if payload.ISO == nil || *payload.ISO != 400 {
		t.Fatal("ISO should survive")
	}
}

func TestAdapterGPS(t *testing.T) {
	record := domain.PhotoRecord{
		GPS: &domain.Coordinate{Latitude: 37.75, Longitude: -122.5},
	}

	payload := Adapter{}.Adapt(record)
	if payload == nil || payload.Latitude == nil || payload.Longitude == nil {
		t.Fatal("expected GPS tags")
	}
	if payload.Latitude.Ref != "N" {
		t.Errorf("latitude ref: got %q", payload.Latitude.Ref)
	}
	if payload.Longitude.Ref != "W" {
		t.Errorf("longitude ref: got %q", payload.Longitude.Ref)
	}
	if payload.Latitude.Degrees != (domain.Rational{Numerator: 37, Denominator: 1}) {
		t.Errorf("latitude degrees: got %+v", payload.Latitude.Degrees)
	}
}

func TestAdapterGPSPrecedence(t *testing.T) {
	exifLat, exifLon := 1.0, 2.0
	record := domain.PhotoRecord{
		GPS: &domain.Coordinate{Latitude: 48.0, Longitude: 11.0},
		Capture: domain.CaptureMetadata{
			Latitude:  &exifLat,
			Longitude: &exifLon,
		},
	}

	payload := Adapter{}.Adapt(record)
	if payload.Latitude.Degrees.Numerator != 48 {
		t.Fatalf("dedicated GPS columns must win, got %+v", payload.Latitude)
	}
}

func TestAdapterEmptyRecordYieldsNil(t *testing.T) {
	if payload := (Adapter{}).Adapt(domain.PhotoRecord{}); payload != nil {
		t.Fatalf("expected nil, got %+v", payload)
	}
}
