package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"apextract/internal/errors"
)

// ExportConfig carries everything an export run needs. Flag values win;
// empty fields fall back to APEXTRACT_* environment variables.
type ExportConfig struct {
	LibraryPath string
	Year        int
	Destination string
	Verbose     bool
	TUI         bool
	CopyOnly    bool
}

// ApplyEnv fills unset fields from the environment.
func (c *ExportConfig) ApplyEnv() {
	if c.LibraryPath == "" {
		c.LibraryPath = envOrEmpty("APEXTRACT_LIBRARY")
	}
	if c.Destination == "" {
		c.Destination = envOrEmpty("APEXTRACT_DESTINATION")
	}
	if !c.Verbose {
		c.Verbose = envTruthy("APEXTRACT_VERBOSE")
	}
}

// Validate runs the preflight checks. All failures are fatal before any
// record is touched.
func (c *ExportConfig) Validate() error {
	if c.LibraryPath == "" {
		return errors.New(errors.InvalidConfig, "library path is required")
	}
	info, err := os.Stat(c.LibraryPath)
	if err != nil {
		return errors.New(errors.InvalidConfig, fmt.Sprintf("library not found: %s", c.LibraryPath))
	}
	if !info.IsDir() {
		return errors.New(errors.InvalidConfig, fmt.Sprintf("library is not a directory: %s", c.LibraryPath))
	}
	if c.Year <= 0 {
		return errors.New(errors.InvalidConfig, "year is required")
	}
	if c.Destination == "" {
		return errors.New(errors.InvalidConfig, "destination is required")
	}
	if samePath(c.LibraryPath, c.Destination) {
		return errors.New(errors.InvalidConfig, "destination must not be the library itself")
	}
	return nil
}

// samePath compares the two paths after resolution, so a symlinked
// destination pointing back into the library is still caught.
func samePath(a, b string) bool {
	return resolvePath(a) == resolvePath(b)
}

func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
