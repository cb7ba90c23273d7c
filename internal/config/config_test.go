package config

import (
	"os"
	"path/filepath"
	"testing"

	appErrors "apextract/internal/errors"
)

func validConfig(t *testing.T) ExportConfig {
	t.Helper()
	return ExportConfig{
		LibraryPath: t.TempDir(),
		Year:        2009,
		Destination: t.TempDir(),
	}
}

func assertInvalidConfig(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	appErr, ok := err.(*appErrors.AppError)
	if !ok || appErr.Kind != appErrors.InvalidConfig {
		t.Fatalf("expected InvalidConfig, got %v", err)
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresLibrary(t *testing.T) {
	cfg := validConfig(t)
	cfg.LibraryPath = ""
	assertInvalidConfig(t, cfg.Validate())
}

func TestValidateRejectsMissingLibrary(t *testing.T) {
	cfg := validConfig(t)
	cfg.LibraryPath = filepath.Join(t.TempDir(), "does-not-exist")
	assertInvalidConfig(t, cfg.Validate())
}

func TestValidateRejectsFileAsLibrary(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "a-file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.LibraryPath = file
	assertInvalidConfig(t, cfg.Validate())
}

func TestValidateRequiresYear(t *testing.T) {
	cfg := validConfig(t)
	cfg.Year = 0
	assertInvalidConfig(t, cfg.Validate())
}

func TestValidateRequiresDestination(t *testing.T) {
	cfg := validConfig(t)
	cfg.Destination = ""
	assertInvalidConfig(t, cfg.Validate())
}

func TestValidateRejectsLibraryAsDestination(t *testing.T) {
	cfg := validConfig(t)
	cfg.Destination = cfg.LibraryPath
	assertInvalidConfig(t, cfg.Validate())
}

func TestValidateRejectsSymlinkedDestinationIntoLibrary(t *testing.T) {
	cfg := validConfig(t)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(cfg.LibraryPath, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	cfg.Destination = link
	assertInvalidConfig(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("APEXTRACT_LIBRARY", "/env/library")
	t.Setenv("APEXTRACT_VERBOSE", "yes")

	cfg := ExportConfig{Destination: "/flag/dest"}
	cfg.ApplyEnv()

	if cfg.LibraryPath != "/env/library" {
		t.Fatalf("library: got %q", cfg.LibraryPath)
	}
	if cfg.Destination != "/flag/dest" {
		t.Fatalf("flag value must win, got %q", cfg.Destination)
	}
	if !cfg.Verbose {
		t.Fatal("verbose should come from the environment")
	}
}
