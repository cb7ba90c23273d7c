package app

import (
	"apextract/internal/domain"
	"apextract/internal/logging"
)

// Adapter normalizes a record's capture metadata into the tag payload the
// metadata writer embeds. Fields absent on the record are omitted from the
// payload, never defaulted.
type Adapter struct {
	Logger logging.Logger
}

// Adapt returns nil when the record carries nothing worth embedding.
func (a Adapter) Adapt(record domain.PhotoRecord) *domain.ExifPayload {
	var p domain.ExifPayload

	if record.CaptureDate != "" {
		if t, ok := domain.ParseCaptureDate(record.CaptureDate); ok {
			p.DateTime = &t
		} else {
			a.Logger.Verbosef("unparseable capture date %q for %s, omitting timestamp tags", record.CaptureDate, record.UUID)
		}
	}

	p.CameraMake = record.Capture.CameraMake
	p.CameraModel = record.Capture.CameraModel
	p.LensModel = record.Capture.LensModel
	p.ISO = record.Capture.ISO
	p.Flash = record.Capture.Flash

	// EXIF stores camera settings as rationals. One decimal digit for
	// f-number and focal length, two for exposure bias, truncated the same
	// way the library itself rendered them.
	if v := record.Capture.Aperture; v != nil {
		p.FNumber = &domain.Rational{Numerator: int64(*v * 10), Denominator: 10}
	}
	if v := record.Capture.FocalLength; v != nil {
		p.FocalLength = &domain.Rational{Numerator: int64(*v * 10), Denominator: 10}
	}
	if v := record.Capture.ExposureBias; v != nil {
		p.ExposureBias = &domain.Rational{Numerator: int64(*v * 100), Denominator: 100}
	}

	if loc, ok := record.Location(); ok {
		lat := domain.DecimalToDMS(loc.Latitude, "N", "S")
		lon := domain.DecimalToDMS(loc.Longitude, "E", "W")
		p.Latitude = &lat
		p.Longitude = &lon
	}

	if p.IsEmpty() {
		return nil
	}
	return &p
}
