package library

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strconv"
	"strings"

	"apextract/internal/domain"
)

// PhotosLibrary reads the ZASSET/ZEXTENDEDATTRIBUTES tables of
// Photos.sqlite.
type PhotosLibrary struct {
	db *sql.DB
}

func OpenPhotos(libraryPath string) (*PhotosLibrary, error) {
	db, err := openReadOnly(photosDBPath(libraryPath))
	if err != nil {
		return nil, fmt.Errorf("open photos database: %w", err)
	}
	return &PhotosLibrary{db: db}, nil
}

func (l *PhotosLibrary) Close() error {
	return l.db.Close()
}

func (l *PhotosLibrary) Layout() domain.LibraryLayout {
	return domain.LibraryLayout{
		PrimaryDir:   "originals",
		SecondaryDir: path.Join("resources", "derivatives"),
	}
}

const photosSelect = `
SELECT
	a.ZUUID,
	a.ZFILENAME,
	a.ZDIRECTORY,
	datetime(a.ZDATECREATED + %[1]d, 'unixepoch') AS date_captured,
	datetime(a.ZADDEDDATE + %[1]d, 'unixepoch') AS date_added,
	a.ZWIDTH,
	a.ZHEIGHT,
	a.ZFAVORITE,
	a.ZHIDDEN,
	e.ZCAMERAMAKE,
	e.ZCAMERAMODEL,
	e.ZAPERTURE,
	e.ZISO,
	e.ZFOCALLENGTH,
	e.ZEXPOSUREBIAS,
	e.ZFLASHFIRED,
	e.ZLATITUDE,
	e.ZLONGITUDE
FROM ZASSET a
LEFT JOIN ZEXTENDEDATTRIBUTES e ON a.ZEXTENDEDATTRIBUTES = e.Z_PK
`

func photosQuery(where, tail string) string {
	return fmt.Sprintf(photosSelect, coreDataEpoch) + where + tail
}

func (l *PhotosLibrary) PhotosForYear(ctx context.Context, year int) ([]domain.PhotoRecord, error) {
	where := fmt.Sprintf(`WHERE a.ZTRASHEDSTATE = 0
	AND a.ZDATECREATED IS NOT NULL
	AND CAST(strftime('%%Y', datetime(a.ZDATECREATED + %d, 'unixepoch')) AS INTEGER) = ?
`, coreDataEpoch)
	return l.queryRecords(ctx, photosQuery(where, "ORDER BY a.ZDATECREATED ASC"), year)
}

func (l *PhotosLibrary) PhotoByUUID(ctx context.Context, uuid string) (domain.PhotoRecord, error) {
	records, err := l.queryRecords(ctx, photosQuery("WHERE a.ZUUID = ? COLLATE NOCASE\n", "LIMIT 1"), uuid)
	if err != nil {
		return domain.PhotoRecord{}, err
	}
	if len(records) == 0 {
		return domain.PhotoRecord{}, sql.ErrNoRows
	}
	return records[0], nil
}

func (l *PhotosLibrary) AllPhotos(ctx context.Context, limit int) ([]domain.PhotoRecord, error) {
	tail := "ORDER BY a.ZDATECREATED ASC"
	if limit > 0 {
		tail += " LIMIT " + strconv.Itoa(limit)
	}
	return l.queryRecords(ctx, photosQuery("WHERE a.ZTRASHEDSTATE = 0\n", tail))
}

func (l *PhotosLibrary) YearCounts(ctx context.Context) (map[int]int, error) {
	query := fmt.Sprintf(`
SELECT
	CAST(strftime('%%Y', datetime(a.ZDATECREATED + %d, 'unixepoch')) AS INTEGER) AS year,
	COUNT(*) AS count
FROM ZASSET a
WHERE a.ZTRASHEDSTATE = 0
	AND a.ZDATECREATED IS NOT NULL
GROUP BY year
ORDER BY year ASC
`, coreDataEpoch)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var year, count int
		if err := rows.Scan(&year, &count); err != nil {
			return nil, err
		}
		counts[year] = count
	}
	return counts, rows.Err()
}

func (l *PhotosLibrary) queryRecords(ctx context.Context, query string, args ...any) ([]domain.PhotoRecord, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PhotoRecord
	for rows.Next() {
		var (
			uuid         string
			fileName     sql.NullString
			directory    sql.NullString
			dateCaptured sql.NullString
			dateAdded    sql.NullString
			width        sql.NullInt64
			height       sql.NullInt64
			favorite     sql.NullInt64
			hidden       sql.NullInt64
			cameraMake   sql.NullString
			cameraModel  sql.NullString
			aperture     sql.NullFloat64
			iso          sql.NullInt64
			focalLength  sql.NullFloat64
			exposureBias sql.NullFloat64
			flashFired   sql.NullInt64
			lat          sql.NullFloat64
			lon          sql.NullFloat64
		)
		if err := rows.Scan(&uuid, &fileName, &directory, &dateCaptured, &dateAdded,
			&width, &height, &favorite, &hidden,
			&cameraMake, &cameraModel, &aperture, &iso, &focalLength, &exposureBias, &flashFired,
			&lat, &lon); err != nil {
			return nil, err
		}

		record := domain.PhotoRecord{
			UUID:        uuid,
			Name:        fileName.String,
			Filename:    fileName.String,
			CaptureDate: dateCaptured.String,
			DateCreated: dateAdded.String,
			Width:       width.Int64,
			Height:      height.Int64,
			Flagged:     favorite.Int64 != 0,
			Hidden:      hidden.Int64 != 0,
			Capture: domain.CaptureMetadata{
				CameraMake:   strPtr(cameraMake),
				CameraModel:  strPtr(cameraModel),
				Aperture:     f64Ptr(aperture),
				ISO:          i64Ptr(iso),
				FocalLength:  f64Ptr(focalLength),
				ExposureBias: f64Ptr(exposureBias),
				Flash:        i64Ptr(flashFired),
				Latitude:     f64Ptr(lat),
				Longitude:    f64Ptr(lon),
			},
			Locator: domain.SourceLocator{
				RelativePath: originalsRelativePath(uuid, directory.String, fileName.String),
				FallbackName: fileName.String,
			},
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// originalsRelativePath builds the path hint relative to the originals
// directory. Modern Photos libraries shard originals into single-hex-digit
// directories keyed by the first character of the asset UUID; older
// iPhoto-migrated libraries store a full directory path, which the filename
// fallback search recovers when the direct probe misses.
func originalsRelativePath(uuid, directory, fileName string) string {
	if fileName == "" {
		return ""
	}
	if directory != "" && !isHashDir(directory) {
		return path.Join(directory, fileName)
	}
	if uuid == "" {
		return fileName
	}
	hashDir := strings.ToUpper(uuid[:1])
	return path.Join(hashDir, fileName)
}

func isHashDir(directory string) bool {
	if len(directory) != 1 {
		return false
	}
	c := directory[0]
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}
