// Package library reads photo records out of legacy photo-management
// bundles. Two embedded SQL schemas are supported: Aperture
// (.aplibrary/.migratedaplibrary, Library.apdb + Properties.apdb) and Photos
// (.photoslibrary, Photos.sqlite). Databases are opened read-only; the
// library bundle is never mutated.
package library

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"apextract/internal/app"
)

// coreDataEpoch is the offset in seconds between the Unix epoch and
// Jan 1 2001, which Apple's Core Data timestamps count from.
const coreDataEpoch = 978307200

// ErrNoDatabase means the path holds neither library flavor.
var ErrNoDatabase = errors.New("no library database found")

// Open detects the library flavor at path and returns its record source.
func Open(libraryPath string) (app.RecordSource, error) {
	if fileExists(apertureDBPath(libraryPath)) {
		return OpenAperture(libraryPath)
	}
	if fileExists(photosDBPath(libraryPath)) {
		return OpenPhotos(libraryPath)
	}
	return nil, ErrNoDatabase
}

func apertureDBPath(libraryPath string) string {
	return filepath.Join(libraryPath, "Database", "apdb", "Library.apdb")
}

func aperturePropsPath(libraryPath string) string {
	return filepath.Join(libraryPath, "Database", "apdb", "Properties.apdb")
}

func photosDBPath(libraryPath string) string {
	return filepath.Join(libraryPath, "database", "Photos.sqlite")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func openReadOnly(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", "file:"+path+"?mode=ro")
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func f64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func i64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}
