package domain

// ExportStatus is the terminal state of one record in an export run.
type ExportStatus int

const (
	StatusExported ExportStatus = iota
	StatusSkipped
	StatusError
)

func (s ExportStatus) String() string {
	switch s {
	case StatusExported:
		return "exported"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// WriteMode records which tier of the metadata writer produced the output
// file. All three count as exported.
type WriteMode int

const (
	WriteEmbedded WriteMode = iota
	WritePreserved
	WriteCopied
)

func (m WriteMode) String() string {
	switch m {
	case WriteEmbedded:
		return "embedded"
	case WritePreserved:
		return "preserved"
	case WriteCopied:
		return "copied"
	}
	return "unknown"
}

// ExportOutcome is the per-record result the orchestrator collects. Reason is
// set for skips and errors, Destination and Mode for exports.
type ExportOutcome struct {
	UUID        string
	Status      ExportStatus
	Destination string
	Mode        WriteMode
	Reason      string
}

// Tally is the final count of an export run, never mutated after the run
// completes.
type Tally struct {
	Exported int
	Skipped  int
	Errors   int
}

func (t *Tally) Record(outcome ExportOutcome) {
	switch outcome.Status {
	case StatusExported:
		t.Exported++
	case StatusSkipped:
		t.Skipped++
	case StatusError:
		t.Errors++
	}
}

func (t Tally) Total() int {
	return t.Exported + t.Skipped + t.Errors
}
