package presentation

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"apextract/internal/domain"
)

// progressEvery controls how often successful exports are echoed; skips and
// errors always print.
const progressEvery = 100

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) ExportStarting(year, total int, destination string) {
	fmt.Fprintf(p.Writer, "Exporting %d photos from %d to %s\n", total, year, destination)
	fmt.Fprintln(p.Writer)
}

// RecordOutcome prints one export result. The index is 1-based. Skips and
// errors surface immediately with the record UUID so a long run stays
// diagnosable; plain successes only print as a periodic heartbeat.
func (p Printer) RecordOutcome(index, total int, outcome domain.ExportOutcome) {
	switch outcome.Status {
	case domain.StatusSkipped:
		fmt.Fprintf(p.Writer, "SKIP  [%d/%d] %s: %s\n", index, total, outcome.UUID, outcome.Reason)
	case domain.StatusError:
		fmt.Fprintf(p.Writer, "ERROR [%d/%d] %s: %s\n", index, total, outcome.UUID, outcome.Reason)
	default:
		if p.Verbose {
			fmt.Fprintf(p.Writer, "OK    [%d/%d] %s -> %s (%s)\n", index, total, outcome.UUID, outcome.Destination, outcome.Mode)
			return
		}
		if index%progressEvery == 0 || index == total {
			fmt.Fprintf(p.Writer, "  %d/%d exported\n", index, total)
		}
	}
}

func (p Printer) PrintTally(tally domain.Tally) {
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, strings.Repeat("=", 40))
	fmt.Fprintf(p.Writer, "Exported: %d\n", tally.Exported)
	fmt.Fprintf(p.Writer, "Skipped:  %d\n", tally.Skipped)
	fmt.Fprintf(p.Writer, "Errors:   %d\n", tally.Errors)
	fmt.Fprintf(p.Writer, "Total:    %d\n", tally.Total())
	fmt.Fprintln(p.Writer, strings.Repeat("=", 40))
}

// PrintPhotoInfo dumps one record's fields, omitting unset metadata.
func (p Printer) PrintPhotoInfo(record domain.PhotoRecord) {
	w := p.Writer
	fmt.Fprintf(w, "UUID:          %s\n", record.UUID)
	fmt.Fprintf(w, "Name:          %s\n", record.Name)
	fmt.Fprintf(w, "Filename:      %s\n", record.Filename)
	fmt.Fprintf(w, "Captured:      %s\n", record.CaptureDate)
	fmt.Fprintf(w, "Created:       %s\n", record.DateCreated)
	if record.Width > 0 || record.Height > 0 {
		fmt.Fprintf(w, "Dimensions:    %dx%d\n", record.Width, record.Height)
	}
	if record.FileSize > 0 {
		fmt.Fprintf(w, "File size:     %d bytes\n", record.FileSize)
	}
	if record.Rating != 0 {
		fmt.Fprintf(w, "Rating:        %d\n", record.Rating)
	}
	fmt.Fprintf(w, "Flagged:       %t\n", record.Flagged)
	fmt.Fprintf(w, "Hidden:        %t\n", record.Hidden)
	if record.Locator.RelativePath != "" {
		fmt.Fprintf(w, "Source path:   %s\n", record.Locator.RelativePath)
	}

	meta := record.Capture
	if camera := record.Camera(); camera != "" {
		fmt.Fprintf(w, "Camera:        %s\n", camera)
	}
	if meta.LensModel != nil {
		fmt.Fprintf(w, "Lens:          %s\n", *meta.LensModel)
	}
	if meta.Aperture != nil {
		fmt.Fprintf(w, "Aperture:      f/%.1f\n", *meta.Aperture)
	}
	if meta.FocalLength != nil {
		fmt.Fprintf(w, "Focal length:  %.1f mm\n", *meta.FocalLength)
	}
	if meta.ISO != nil {
		fmt.Fprintf(w, "ISO:           %d\n", *meta.ISO)
	}
	if meta.ExposureBias != nil {
		fmt.Fprintf(w, "Exposure bias: %+.2f EV\n", *meta.ExposureBias)
	}
	if meta.Flash != nil {
		fmt.Fprintf(w, "Flash:         %d\n", *meta.Flash)
	}
	if loc, ok := record.Location(); ok {
		fmt.Fprintf(w, "Location:      %.6f, %.6f\n", loc.Latitude, loc.Longitude)
	}
}

// PrintYearReport renders per-year photo counts with a proportional bar.
func (p Printer) PrintYearReport(counts map[int]int) {
	years := make([]int, 0, len(counts))
	maxCount := 0
	total := 0
	for year, count := range counts {
		years = append(years, year)
		total += count
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Ints(years)

	const barWidth = 40
	for _, year := range years {
		count := counts[year]
		bar := 0
		if maxCount > 0 {
			bar = count * barWidth / maxCount
		}
		if bar == 0 && count > 0 {
			bar = 1
		}
		fmt.Fprintf(p.Writer, "%d  %6d  %s\n", year, count, strings.Repeat("#", bar))
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Total: %d photos across %d years\n", total, len(years))
}
