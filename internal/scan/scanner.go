// Package scan aggregates file-system statistics over a photo-library
// directory tree: per-directory image counts, cumulative sizes and extension
// histograms, reported either flat or grouped by size category.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"apextract/internal/app"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".heic": true, ".heif": true,
	".tif": true, ".tiff": true, ".gif": true,
	".raw": true, ".dng": true, ".cr2": true, ".cr3": true, ".nef": true,
	".arw": true, ".raf": true, ".orf": true,
	".mp4": true, ".mov": true,
}

// IsImage reports whether the filename has a media extension the scanner
// cares about.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// DirStats accumulates per-directory media statistics.
type DirStats struct {
	Count int
	Bytes int64
	Exts  map[string]int
}

func (s *DirStats) add(size int64, ext string) {
	s.Count++
	s.Bytes += size
	s.Exts[ext]++
}

// AvgBytes is the mean file size, 0 for an empty entry.
func (s *DirStats) AvgBytes() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Bytes) / float64(s.Count)
}

// TopExt is the most common extension in the entry.
func (s *DirStats) TopExt() string {
	top, best := "", 0
	for ext, count := range s.Exts {
		if count > best || (count == best && ext < top) {
			top, best = ext, count
		}
	}
	return top
}

// Result maps directory path (absolute) to its statistics. Only directories
// containing at least one media file appear.
type Result map[string]*DirStats

// Run walks root and collects statistics. Unreadable files and subtrees are
// skipped, not fatal.
func Run(fsys app.FileSystem, root string) (Result, error) {
	stats := Result{}
	err := fsys.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || !IsImage(d.Name()) {
			return nil
		}
		info, err := fsys.Stat(path)
		if err != nil {
			return nil
		}
		dir := filepath.Dir(path)
		entry := stats[dir]
		if entry == nil {
			entry = &DirStats{Exts: map[string]int{}}
			stats[dir] = entry
		}
		entry.add(info.Size(), strings.ToLower(filepath.Ext(d.Name())))
		return nil
	})
	return stats, err
}
