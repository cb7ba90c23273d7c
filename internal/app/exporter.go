package app

import (
	"context"
	"errors"
	"fmt"

	"apextract/internal/domain"
	"apextract/internal/logging"
)

// ProgressFunc is called once per processed record, in record order.
type ProgressFunc func(index, total int, outcome domain.ExportOutcome)

// Exporter drives the export pipeline over a record set: resolve the source,
// compute the destination, write with metadata, collect the outcome. It is
// the only stateful component of a run; the Namer's sequence table and the
// tally are updated in strict record order.
type Exporter struct {
	FS         FileSystem
	Writer     MetadataWriter
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// Run processes every record to completion. Per-record failures are contained
// as outcomes; only context cancellation stops the loop early.
func (e *Exporter) Run(ctx context.Context, records []domain.PhotoRecord, libraryRoot, destRoot string, layout domain.LibraryLayout) (domain.Tally, error) {
	var tally domain.Tally
	if e.FS == nil || e.Writer == nil {
		return tally, errors.New("exporter requires FS and Writer")
	}

	stop := e.Logger.Measure("Exporting records")
	defer stop()

	resolver := Resolver{FS: e.FS, Logger: e.Logger}
	adapter := Adapter{Logger: e.Logger}
	namer := NewNamer(e.FS)

	total := len(records)
	for i, record := range records {
		select {
		case <-ctx.Done():
			return tally, ctx.Err()
		default:
		}

		outcome := e.processRecord(record, libraryRoot, destRoot, layout, resolver, adapter, namer)
		tally.Record(outcome)
		if e.OnProgress != nil {
			e.OnProgress(i+1, total, outcome)
		}
	}

	return tally, nil
}

func (e *Exporter) processRecord(record domain.PhotoRecord, libraryRoot, destRoot string, layout domain.LibraryLayout, resolver Resolver, adapter Adapter, namer *Namer) domain.ExportOutcome {
	source, ok := resolver.Resolve(record, libraryRoot, layout)
	if !ok {
		return domain.ExportOutcome{
			UUID:   record.UUID,
			Status: domain.StatusSkipped,
			Reason: "source file not found",
		}
	}

	target := namer.Next(destRoot, record.CaptureDate)
	if err := e.FS.MkdirAll(target.Dir, 0o755); err != nil {
		return domain.ExportOutcome{
			UUID:   record.UUID,
			Status: domain.StatusError,
			Reason: fmt.Sprintf("create destination directory: %v", err),
		}
	}

	payload := adapter.Adapt(record)

	mode, err := e.Writer.Write(source, target.Path, payload)
	if err != nil {
		return domain.ExportOutcome{
			UUID:   record.UUID,
			Status: domain.StatusError,
			Reason: fmt.Sprintf("write %s: %v", target.Filename, err),
		}
	}

	return domain.ExportOutcome{
		UUID:        record.UUID,
		Status:      domain.StatusExported,
		Destination: target.Path,
		Mode:        mode,
	}
}
