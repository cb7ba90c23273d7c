package app

import (
	"context"
	"io/fs"
	"time"

	"apextract/internal/domain"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
	Chtimes(path string, atime, mtime time.Time) error
	// Resolve returns the absolute, symlink-free form of path.
	Resolve(path string) (string, error)
}

// RecordSource is the library database. Implementations return records
// filtered of trashed items and ordered by capture timestamp ascending; the
// export pipeline relies on that ordering for its hour-scoped sequences.
type RecordSource interface {
	PhotosForYear(ctx context.Context, year int) ([]domain.PhotoRecord, error)
	PhotoByUUID(ctx context.Context, uuid string) (domain.PhotoRecord, error)
	AllPhotos(ctx context.Context, limit int) ([]domain.PhotoRecord, error)
	YearCounts(ctx context.Context) (map[int]int, error)
	Layout() domain.LibraryLayout
	Close() error
}

// MetadataWriter materializes one destination file from a source file,
// embedding the payload when it can and degrading through preserve and raw
// copy when it cannot. It returns an error only when even the raw copy fails.
type MetadataWriter interface {
	Write(sourcePath, destPath string, payload *domain.ExifPayload) (domain.WriteMode, error)
}
