package exifcodec

import (
	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"apextract/internal/domain"
)

// exifTimeLayout is the colon-separated timestamp format EXIF mandates.
const exifTimeLayout = "2006:01:02 15:04:05"

func newExifBuilder() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}
	ti := exif.NewTagIndex()
	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}

// applyPayload writes every present payload field into its EXIF IFD. Absent
// fields leave whatever the source block already had.
func applyPayload(rootIb *exif.IfdBuilder, p *domain.ExifPayload) error {
	if p.CameraMake != nil || p.CameraModel != nil {
		rootIfd, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD")
		if err != nil {
			return err
		}
		if p.CameraMake != nil {
			if err := rootIfd.SetStandardWithName("Make", *p.CameraMake); err != nil {
				return err
			}
		}
		if p.CameraModel != nil {
			if err := rootIfd.SetStandardWithName("Model", *p.CameraModel); err != nil {
				return err
			}
		}
	}

	if p.DateTime != nil || p.LensModel != nil || p.FNumber != nil ||
		p.FocalLength != nil || p.ExposureBias != nil || p.ISO != nil || p.Flash != nil {
		exifIfd, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/Exif")
		if err != nil {
			return err
		}
		if p.DateTime != nil {
			ts := p.DateTime.Format(exifTimeLayout)
			if err := exifIfd.SetStandardWithName("DateTimeOriginal", ts); err != nil {
				return err
			}
			if err := exifIfd.SetStandardWithName("DateTimeDigitized", ts); err != nil {
				return err
			}
		}
		if p.LensModel != nil {
			if err := exifIfd.SetStandardWithName("LensModel", *p.LensModel); err != nil {
				return err
			}
		}
		if p.FNumber != nil {
			if err := exifIfd.SetStandardWithName("FNumber", unsignedRational(*p.FNumber)); err != nil {
				return err
			}
		}
		if p.FocalLength != nil {
			if err := exifIfd.SetStandardWithName("FocalLength", unsignedRational(*p.FocalLength)); err != nil {
				return err
			}
		}
		if p.ExposureBias != nil {
			if err := exifIfd.SetStandardWithName("ExposureBiasValue", signedRational(*p.ExposureBias)); err != nil {
				return err
			}
		}
		if p.ISO != nil {
			if err := exifIfd.SetStandardWithName("ISOSpeedRatings", []uint16{uint16(*p.ISO)}); err != nil {
				return err
			}
		}
		if p.Flash != nil {
			if err := exifIfd.SetStandardWithName("Flash", []uint16{uint16(*p.Flash)}); err != nil {
				return err
			}
		}
	}

	if p.Latitude != nil && p.Longitude != nil {
		gpsIfd, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/GPSInfo")
		if err != nil {
			return err
		}
		if err := gpsIfd.SetStandardWithName("GPSLatitudeRef", p.Latitude.Ref); err != nil {
			return err
		}
		if err := gpsIfd.SetStandardWithName("GPSLatitude", dmsRationals(*p.Latitude)); err != nil {
			return err
		}
		if err := gpsIfd.SetStandardWithName("GPSLongitudeRef", p.Longitude.Ref); err != nil {
			return err
		}
		if err := gpsIfd.SetStandardWithName("GPSLongitude", dmsRationals(*p.Longitude)); err != nil {
			return err
		}
	}

	return nil
}

func unsignedRational(r domain.Rational) []exifcommon.Rational {
	return []exifcommon.Rational{{
		Numerator:   uint32(r.Numerator),
		Denominator: uint32(r.Denominator),
	}}
}

func signedRational(r domain.Rational) []exifcommon.SignedRational {
	return []exifcommon.SignedRational{{
		Numerator:   int32(r.Numerator),
		Denominator: int32(r.Denominator),
	}}
}

func dmsRationals(d domain.DMS) []exifcommon.Rational {
	return []exifcommon.Rational{
		{Numerator: uint32(d.Degrees.Numerator), Denominator: uint32(d.Degrees.Denominator)},
		{Numerator: uint32(d.Minutes.Numerator), Denominator: uint32(d.Minutes.Denominator)},
		{Numerator: uint32(d.Seconds.Numerator), Denominator: uint32(d.Seconds.Denominator)},
	}
}
