package presentation

import (
	"bytes"
	"strings"
	"testing"

	"apextract/internal/domain"
)

func TestRecordOutcomeSkipPrintsImmediately(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.RecordOutcome(3, 500, domain.ExportOutcome{
		UUID:   "abc-123",
		Status: domain.StatusSkipped,
		Reason: "source file not found",
	})

	out := buf.String()
	if !strings.Contains(out, "SKIP") || !strings.Contains(out, "abc-123") || !strings.Contains(out, "source file not found") {
		t.Fatalf("skip line incomplete: %q", out)
	}
}

func TestRecordOutcomeErrorPrintsImmediately(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.RecordOutcome(7, 500, domain.ExportOutcome{
		UUID:   "def-456",
		Status: domain.StatusError,
		Reason: "disk full",
	})

	if !strings.Contains(buf.String(), "ERROR") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestRecordOutcomeSuccessIsQuietBetweenHeartbeats(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	outcome := domain.ExportOutcome{Status: domain.StatusExported, Destination: "/out/x.jpeg"}
	printer.RecordOutcome(7, 500, outcome)
	if buf.Len() != 0 {
		t.Fatalf("mid-run success should be silent, got %q", buf.String())
	}

	printer.RecordOutcome(100, 500, outcome)
	if !strings.Contains(buf.String(), "100/500") {
		t.Fatalf("heartbeat missing: %q", buf.String())
	}

	buf.Reset()
	printer.RecordOutcome(500, 500, outcome)
	if !strings.Contains(buf.String(), "500/500") {
		t.Fatalf("final record must print: %q", buf.String())
	}
}

func TestRecordOutcomeVerbosePrintsEverySuccess(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf, Verbose: true}

	printer.RecordOutcome(7, 500, domain.ExportOutcome{
		UUID:        "ghi-789",
		Status:      domain.StatusExported,
		Destination: "/out/2009-07-14-16-007.jpeg",
		Mode:        domain.WriteEmbedded,
	})

	out := buf.String()
	if !strings.Contains(out, "ghi-789") || !strings.Contains(out, "embedded") {
		t.Fatalf("verbose line incomplete: %q", out)
	}
}

func TestPrintTally(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintTally(domain.Tally{Exported: 140, Skipped: 8, Errors: 2})
	out := buf.String()

	for _, want := range []string{"Exported: 140", "Skipped:  8", "Errors:   2", "Total:    150"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintPhotoInfoOmitsUnsetFields(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintPhotoInfo(domain.PhotoRecord{UUID: "abc", Name: "IMG_0001"})
	out := buf.String()

	if !strings.Contains(out, "abc") {
		t.Fatalf("missing UUID:\n%s", out)
	}
	for _, absent := range []string{"Aperture:", "ISO:", "Location:", "Lens:"} {
		if strings.Contains(out, absent) {
			t.Errorf("unset field %q should not print:\n%s", absent, out)
		}
	}
}

func TestPrintYearReport(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintYearReport(map[int]int{2009: 100, 2007: 50})
	out := buf.String()

	idx2007 := strings.Index(out, "2007")
	idx2009 := strings.Index(out, "2009")
	if idx2007 < 0 || idx2009 < 0 || idx2007 > idx2009 {
		t.Fatalf("years must list ascending:\n%s", out)
	}
	if !strings.Contains(out, "Total: 150 photos across 2 years") {
		t.Fatalf("missing total line:\n%s", out)
	}
}
