package scan

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Options controls how a scan result is reported.
type Options struct {
	// Thresholds are average-size boundaries in bytes, descending. One
	// threshold splits Originals from Thumbnails; two add a Smaller
	// Thumbnails bucket.
	Thresholds []int64
	// DumpAll prints every directory instead of the grouped view.
	DumpAll bool
	// ShowSubdirs adds a per-subdirectory breakdown inside each group.
	ShowSubdirs bool
}

// ParseThresholds parses a comma-separated size list like "500KB,100KB" and
// returns the values sorted descending.
func ParseThresholds(value string) ([]int64, error) {
	var thresholds []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := ParseSize(part)
		if err != nil {
			return nil, err
		}
		thresholds = append(thresholds, size)
	}
	sort.Slice(thresholds, func(i, j int) bool { return thresholds[i] > thresholds[j] })
	return thresholds, nil
}

// ParseSize converts a human-readable size string ("500KB", "2MB", "1024")
// to bytes.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier, s = 1<<30, strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier, s = 1<<20, strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier, s = 1<<10, strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}
	number, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	return int64(number * float64(multiplier)), nil
}

// HumanSize renders bytes as B/KiB/MiB/GiB/TiB with one decimal.
func HumanSize(bytes float64) string {
	for _, unit := range []string{"B", "KiB", "MiB", "GiB", "TiB"} {
		if bytes < 1024 {
			return fmt.Sprintf("%.1f %s", bytes, unit)
		}
		bytes /= 1024
	}
	return fmt.Sprintf("%.1f PiB", bytes)
}

type category struct {
	lower, upper int64
	name         string
}

func categories(thresholds []int64) []category {
	const unbounded = int64(1)<<62 - 1
	switch {
	case len(thresholds) >= 2:
		return []category{
			{thresholds[0], unbounded, "Originals"},
			{thresholds[1], thresholds[0], "Thumbnails"},
			{0, thresholds[1], "Smaller Thumbnails"},
		}
	case len(thresholds) == 1:
		return []category{
			{thresholds[0], unbounded, "Originals"},
			{0, thresholds[0], "Thumbnails"},
		}
	default:
		return []category{{0, unbounded, "All Files"}}
	}
}

type group struct {
	name    string
	stats   DirStats
	subdirs map[string]*DirStats
}

// WriteReport renders the scan result to w, grouped unless DumpAll is set.
func WriteReport(w io.Writer, root string, stats Result, opts Options) {
	if opts.DumpAll {
		writeFlat(w, root, stats)
		return
	}

	cats := categories(opts.Thresholds)
	groups := map[string]*group{}

	for dir, data := range stats {
		name := "Other"
		avg := int64(data.AvgBytes())
		for _, c := range cats {
			if avg >= c.lower && avg < c.upper {
				name = c.name
				break
			}
		}

		rootGroup := topLevelGroup(root, dir)
		key := fmt.Sprintf("%s (%s)", rootGroup, name)
		g := groups[key]
		if g == nil {
			g = &group{name: key, stats: DirStats{Exts: map[string]int{}}, subdirs: map[string]*DirStats{}}
			groups[key] = g
		}
		g.stats.Count += data.Count
		g.stats.Bytes += data.Bytes
		for ext, count := range data.Exts {
			g.stats.Exts[ext] += count
		}

		if opts.ShowSubdirs {
			sub := subdirKey(root, rootGroup, dir)
			entry := g.subdirs[sub]
			if entry == nil {
				entry = &DirStats{Exts: map[string]int{}}
				g.subdirs[sub] = entry
			}
			entry.Count += data.Count
			entry.Bytes += data.Bytes
			for ext, count := range data.Exts {
				entry.Exts[ext] += count
			}
		}
	}

	sorted := make([]*group, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].stats.Bytes > sorted[j].stats.Bytes })

	fmt.Fprintf(w, "\nSummary for %s (grouped by size and root folder)\n\n", root)
	header := fmt.Sprintf("%-40s %8s %12s %12s %10s", "Group (Category)", "# files", "Total size", "Avg size", "Top ext")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, g := range sorted {
		fmt.Fprintf(w, "%-40s %8d %12s %12s %10s\n",
			g.name, g.stats.Count, HumanSize(float64(g.stats.Bytes)), HumanSize(g.stats.AvgBytes()), g.stats.TopExt())

		if !opts.ShowSubdirs {
			continue
		}
		type subEntry struct {
			name string
			data *DirStats
		}
		subs := make([]subEntry, 0, len(g.subdirs))
		for name, data := range g.subdirs {
			subs = append(subs, subEntry{name, data})
		}
		sort.Slice(subs, func(i, j int) bool { return subs[i].data.Bytes > subs[j].data.Bytes })
		for _, sub := range subs {
			fmt.Fprintf(w, "  └─ %-36s %8d %12s %12s %10s\n",
				sub.name, sub.data.Count, HumanSize(float64(sub.data.Bytes)), HumanSize(sub.data.AvgBytes()), sub.data.TopExt())
		}
	}
}

func writeFlat(w io.Writer, root string, stats Result) {
	type entry struct {
		dir  string
		data *DirStats
	}
	sorted := make([]entry, 0, len(stats))
	for dir, data := range stats {
		sorted = append(sorted, entry{dir, data})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].data.Bytes > sorted[j].data.Bytes })

	fmt.Fprintf(w, "\nSummary for %s\n\n", root)
	header := fmt.Sprintf("%-40s %8s %12s %12s %10s", "Folder (relative)", "# files", "Total size", "Avg size", "Top ext")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, e := range sorted {
		rel, err := filepath.Rel(root, e.dir)
		if err != nil {
			rel = e.dir
		}
		fmt.Fprintf(w, "%-40s %8d %12s %12s %10s\n",
			rel, e.data.Count, HumanSize(float64(e.data.Bytes)), HumanSize(e.data.AvgBytes()), e.data.TopExt())
	}
}

// topLevelGroup names the bucket a directory is grouped under: its first
// path component, or the first two for the sharded resources/originals
// trees.
func topLevelGroup(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return "/"
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) > 1 && (parts[0] == "resources" || parts[0] == "originals") {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

func subdirKey(root, rootGroup, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return "/"
	}
	parts := strings.Split(rel, string(filepath.Separator))
	groupDepth := strings.Count(rootGroup, "/") + 1
	if len(parts) > groupDepth {
		return parts[groupDepth]
	}
	if len(parts) > 1 {
		return parts[1]
	}
	return "/"
}
