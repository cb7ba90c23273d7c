package domain

import "time"

// CaptureTimestampLayouts are the literal formats a library database stores
// capture dates in, tried in order. The first that parses wins.
var CaptureTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
}

// ParseCaptureDate parses the capture-date string as stored in the library
// database.
func ParseCaptureDate(value string) (time.Time, bool) {
	for _, layout := range CaptureTimestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Coordinate is a GPS position in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// CaptureMetadata holds the camera settings recorded for a photo. Every field
// is optional; nil means the library has no value for it.
type CaptureMetadata struct {
	CameraMake   *string
	CameraModel  *string
	LensModel    *string
	Aperture     *float64
	FocalLength  *float64
	ISO          *int64
	ExposureBias *float64
	Flash        *int64
	// Latitude and Longitude were recovered from the photo's own EXIF block
	// at import time. The dedicated per-photo GPS columns live on
	// PhotoRecord.GPS and take precedence.
	Latitude  *float64
	Longitude *float64
}

// SourceLocator is the library's hint for where the photo's file lives.
type SourceLocator struct {
	// RelativePath is relative to the library's primary asset directory
	// ("Masters" for Aperture, "originals" for Photos).
	RelativePath string
	// FallbackName is used for a recursive filename search when the
	// relative path no longer matches a file on disk.
	FallbackName string
}

// LibraryLayout names the asset subtrees of a library bundle.
type LibraryLayout struct {
	// PrimaryDir holds full-size originals.
	PrimaryDir string
	// SecondaryDir holds previews or derivatives, searched when the
	// original is gone.
	SecondaryDir string
}

// PhotoRecord is one row from a library database, immutable once built.
type PhotoRecord struct {
	UUID        string
	Name        string
	Filename    string
	CaptureDate string // as stored; empty when the database has no date
	DateCreated string
	Width       int64
	Height      int64
	FileSize    int64
	Rating      int64
	Flagged     bool
	Hidden      bool
	Capture     CaptureMetadata
	GPS         *Coordinate
	Locator     SourceLocator
}

// CaptureTime parses the record's capture date. ok is false when the date is
// absent or malformed.
func (r PhotoRecord) CaptureTime() (time.Time, bool) {
	if r.CaptureDate == "" {
		return time.Time{}, false
	}
	return ParseCaptureDate(r.CaptureDate)
}

// Camera renders "Make Model" for display, empty when neither is known.
func (r PhotoRecord) Camera() string {
	switch {
	case r.Capture.CameraMake != nil && r.Capture.CameraModel != nil:
		return *r.Capture.CameraMake + " " + *r.Capture.CameraModel
	case r.Capture.CameraMake != nil:
		return *r.Capture.CameraMake
	case r.Capture.CameraModel != nil:
		return *r.Capture.CameraModel
	}
	return ""
}

// Location resolves the record's GPS position, preferring the dedicated
// per-photo columns over coordinates recovered from EXIF.
func (r PhotoRecord) Location() (Coordinate, bool) {
	if r.GPS != nil {
		return *r.GPS, true
	}
	if r.Capture.Latitude != nil && r.Capture.Longitude != nil {
		return Coordinate{Latitude: *r.Capture.Latitude, Longitude: *r.Capture.Longitude}, true
	}
	return Coordinate{}, false
}
