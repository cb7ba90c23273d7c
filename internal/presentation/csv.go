package presentation

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"apextract/internal/domain"
)

// WriteMetadataCSV writes one row per record with every metadata column the
// record sources expose. Unset optional fields stay empty rather than zero.
func WriteMetadataCSV(w io.Writer, records []domain.PhotoRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"uuid", "name", "filename", "date_captured", "date_created",
		"width", "height", "file_size", "rating", "flagged", "hidden",
		"camera_make", "camera_model", "lens_model",
		"aperture", "iso", "focal_length", "exposure_bias", "flash",
		"latitude", "longitude", "source_path",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		meta := record.Capture
		row := []string{
			record.UUID,
			record.Name,
			record.Filename,
			record.CaptureDate,
			record.DateCreated,
			strconv.FormatInt(record.Width, 10),
			strconv.FormatInt(record.Height, 10),
			strconv.FormatInt(record.FileSize, 10),
			strconv.FormatInt(record.Rating, 10),
			strconv.FormatBool(record.Flagged),
			strconv.FormatBool(record.Hidden),
			strOrEmpty(meta.CameraMake),
			strOrEmpty(meta.CameraModel),
			strOrEmpty(meta.LensModel),
			floatOrEmpty(meta.Aperture),
			intOrEmpty(meta.ISO),
			floatOrEmpty(meta.FocalLength),
			floatOrEmpty(meta.ExposureBias),
			intOrEmpty(meta.Flash),
			"",
			"",
			record.Locator.RelativePath,
		}
		if loc, ok := record.Location(); ok {
			row[19] = strconv.FormatFloat(loc.Latitude, 'f', -1, 64)
			row[20] = strconv.FormatFloat(loc.Longitude, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteYearReportCSV writes year/count pairs, years ascending.
func WriteYearReportCSV(w io.Writer, counts map[int]int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "count"}); err != nil {
		return err
	}

	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		if err := cw.Write([]string{strconv.Itoa(year), strconv.Itoa(counts[year])}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}

func intOrEmpty(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
