package domain

import (
	"math"
	"time"
)

// Rational mirrors an EXIF rational value.
type Rational struct {
	Numerator   int64
	Denominator int64
}

// DMS is a degrees/minutes/seconds triple with a hemisphere reference,
// encoded the way EXIF GPS tags expect: (deg,1) (min,1) (sec,100).
type DMS struct {
	Degrees Rational
	Minutes Rational
	Seconds Rational
	Ref     string
}

// ExifPayload is the normalized tag set handed to the metadata writer.
// A nil pointer means "omit the tag", never "write a default".
type ExifPayload struct {
	DateTime     *time.Time
	CameraMake   *string
	CameraModel  *string
	LensModel    *string
	FNumber      *Rational
	FocalLength  *Rational
	ExposureBias *Rational
	ISO          *int64
	Flash        *int64
	Latitude     *DMS
	Longitude    *DMS
}

// IsEmpty reports whether the payload carries no tags at all.
func (p ExifPayload) IsEmpty() bool {
	return p.DateTime == nil &&
		p.CameraMake == nil &&
		p.CameraModel == nil &&
		p.LensModel == nil &&
		p.FNumber == nil &&
		p.FocalLength == nil &&
		p.ExposureBias == nil &&
		p.ISO == nil &&
		p.Flash == nil &&
		p.Latitude == nil &&
		p.Longitude == nil
}

// DecimalToDMS converts decimal degrees to an EXIF GPS triple. Degrees and
// minutes are truncated, seconds are truncated to hundredths; rounding would
// shift positions across the minute boundary.
func DecimalToDMS(decimal float64, positiveRef, negativeRef string) DMS {
	ref := positiveRef
	if decimal < 0 {
		ref = negativeRef
	}
	abs := math.Abs(decimal)
	degrees := int64(abs)
	minutes := int64((abs - float64(degrees)) * 60)
	seconds := int64((abs - float64(degrees) - float64(minutes)/60) * 3600 * 100)
	return DMS{
		Degrees: Rational{Numerator: degrees, Denominator: 1},
		Minutes: Rational{Numerator: minutes, Denominator: 1},
		Seconds: Rational{Numerator: seconds, Denominator: 100},
		Ref:     ref,
	}
}
