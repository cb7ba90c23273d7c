package domain

import "testing"

func TestDecimalToDMSNorthernHemisphere(t *testing.T) {
	dms := DecimalToDMS(37.75, "N", "S")
	if dms.Ref != "N" {
		t.Fatalf("ref: got %q, want N", dms.Ref)
	}
	if dms.Degrees != (Rational{37, 1}) {
		t.Fatalf("degrees: got %+v", dms.Degrees)
	}
	if dms.Minutes != (Rational{45, 1}) {
		t.Fatalf("minutes: got %+v", dms.Minutes)
	}
	if dms.Seconds != (Rational{0, 100}) {
		t.Fatalf("seconds: got %+v", dms.Seconds)
	}
}

func TestDecimalToDMSNegativeFlipsRef(t *testing.T) {
	dms := DecimalToDMS(-122.5, "E", "W")
	if dms.Ref != "W" {
		t.Fatalf("ref: got %q, want W", dms.Ref)
	}
	if dms.Degrees != (Rational{122, 1}) {
		t.Fatalf("degrees: got %+v", dms.Degrees)
	}
	if dms.Minutes != (Rational{30, 1}) {
		t.Fatalf("minutes: got %+v", dms.Minutes)
	}
}

func TestDecimalToDMSSecondsInHundredths(t *testing.T) {
	// 0.2625 degrees = 15.75 minutes = 15 min 45 s
	dms := DecimalToDMS(0.2625, "N", "S")
	if dms.Minutes != (Rational{15, 1}) {
		t.Fatalf("minutes: got %+v", dms.Minutes)
	}
	if dms.Seconds != (Rational{4500, 100}) {
		t.Fatalf("seconds: got %+v", dms.Seconds)
	}
}

func TestExifPayloadIsEmpty(t *testing.T) {
	var p ExifPayload
	if !p.IsEmpty() {
		t.Fatal("zero payload should be empty")
	}

	iso := int64(400)
	p.ISO = &iso
	if p.IsEmpty() {
		t.Fatal("payload with ISO should not be empty")
	}
}
