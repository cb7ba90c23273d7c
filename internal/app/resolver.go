package app

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"apextract/internal/domain"
	"apextract/internal/logging"
)

// Resolver locates the on-disk file for a record inside a library bundle.
// Every accepted candidate is containment-checked against the resolved
// library root, so a corrupted or hostile path hint cannot escape the bundle.
type Resolver struct {
	FS     FileSystem
	Logger logging.Logger
}

// Resolve tries, in order: the path hint under the primary asset directory,
// the same hint under the secondary directory, then a recursive filename
// search of both subtrees. Probe errors (permissions, dangling symlinks)
// count as a miss for that candidate, never abort the resolution.
func (r Resolver) Resolve(record domain.PhotoRecord, libraryRoot string, layout domain.LibraryLayout) (string, bool) {
	root, err := r.FS.Resolve(libraryRoot)
	if err != nil {
		r.Logger.Verbosef("cannot resolve library root %s: %v", libraryRoot, err)
		return "", false
	}

	if rel := record.Locator.RelativePath; rel != "" {
		for _, assetDir := range []string{layout.PrimaryDir, layout.SecondaryDir} {
			if assetDir == "" {
				continue
			}
			candidate := filepath.Join(libraryRoot, assetDir, rel)
			if r.accept(candidate, root) {
				return candidate, true
			}
		}
	}

	if name := record.Locator.FallbackName; name != "" {
		for _, assetDir := range []string{layout.PrimaryDir, layout.SecondaryDir} {
			if assetDir == "" {
				continue
			}
			if found, ok := r.searchByName(filepath.Join(libraryRoot, assetDir), name, root); ok {
				return found, true
			}
		}
	}

	return "", false
}

// accept reports whether candidate exists, is a regular file, and stays
// inside the resolved library root.
func (r Resolver) accept(candidate, resolvedRoot string) bool {
	info, err := r.FS.Stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	resolved, err := r.FS.Resolve(candidate)
	if err != nil {
		return false
	}
	return contained(resolved, resolvedRoot)
}

func contained(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

var errFound = errors.New("candidate found")

func (r Resolver) searchByName(dir, name, resolvedRoot string) (string, bool) {
	var found string
	err := r.FS.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtree, keep going with the rest.
			return nil
		}
		if d.IsDir() || d.Name() != name {
			return nil
		}
		if !r.accept(path, resolvedRoot) {
			return nil
		}
		found = path
		return errFound
	})
	if errors.Is(err, errFound) {
		return found, true
	}
	return "", false
}
