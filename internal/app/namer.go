package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"apextract/internal/domain"
)

const exportSubdir = "ap_extracted"

type hourKey struct {
	year, month, day, hour int
}

// Target is a computed destination for one record.
type Target struct {
	Dir      string
	Filename string
	Path     string
}

// Namer derives destination filenames from capture timestamps. Sequences are
// scoped to the exact (year, month, day, hour) tuple and increment in record
// order, so the upstream capture-ascending ordering yields 001, 002, ... per
// hour. The on-disk probe keeps re-runs from overwriting prior exports.
type Namer struct {
	FS       FileSystem
	counters map[hourKey]int
	fallback map[string]int
}

func NewNamer(fs FileSystem) *Namer {
	return &Namer{
		FS:       fs,
		counters: make(map[hourKey]int),
		fallback: make(map[string]int),
	}
}

// Next computes the destination for the given raw capture date, consuming one
// sequence slot. Records with unparseable dates land in the "00" month
// directory under a sanitized rendering of the raw string.
func (n *Namer) Next(destRoot, captureDate string) Target {
	var month, stem string
	if t, ok := domain.ParseCaptureDate(captureDate); ok {
		key := hourKey{t.Year(), int(t.Month()), t.Day(), t.Hour()}
		n.counters[key]++
		month = fmt.Sprintf("%02d", int(t.Month()))
		stem = fmt.Sprintf("%s-%03d", t.Format("2006-01-02-15"), n.counters[key])
	} else {
		sanitized := SanitizeStem(captureDate)
		n.fallback[sanitized]++
		month = "00"
		stem = fmt.Sprintf("%s-%03d", sanitized, n.fallback[sanitized])
	}

	dir := filepath.Join(destRoot, month, exportSubdir)
	path := filepath.Join(dir, stem+".jpeg")

	for suffix := 1; n.exists(path); suffix++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-%03d.jpeg", stem, suffix))
	}

	return Target{
		Dir:      dir,
		Filename: filepath.Base(path),
		Path:     path,
	}
}

func (n *Namer) exists(path string) bool {
	if n.FS == nil {
		return false
	}
	exists, err := n.FS.Exists(path)
	return err == nil && exists
}

// SanitizeStem renders a malformed date string into something usable as a
// filename stem: spaces become dashes, colons are dropped, any fractional
// part is cut.
func SanitizeStem(raw string) string {
	stem := strings.ReplaceAll(raw, " ", "-")
	stem = strings.ReplaceAll(stem, ":", "")
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	stem = strings.ReplaceAll(stem, string(filepath.Separator), "-")
	if stem == "" {
		stem = "undated"
	}
	return stem
}
