package library

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"apextract/internal/domain"
)

// ApertureLibrary reads the RKVersion/RKMaster tables of Library.apdb and
// the EXIF property store of Properties.apdb. The Properties database is
// optional; without it records simply carry no camera settings.
type ApertureLibrary struct {
	db    *sql.DB
	props *sql.DB
}

func OpenAperture(libraryPath string) (*ApertureLibrary, error) {
	db, err := openReadOnly(apertureDBPath(libraryPath))
	if err != nil {
		return nil, fmt.Errorf("open aperture database: %w", err)
	}

	lib := &ApertureLibrary{db: db}
	if propsPath := aperturePropsPath(libraryPath); fileExists(propsPath) {
		props, err := openReadOnly(propsPath)
		if err == nil {
			lib.props = props
		}
	}
	return lib, nil
}

func (l *ApertureLibrary) Close() error {
	if l.props != nil {
		l.props.Close()
	}
	return l.db.Close()
}

func (l *ApertureLibrary) Layout() domain.LibraryLayout {
	return domain.LibraryLayout{
		PrimaryDir:   "Masters",
		SecondaryDir: "Previews",
	}
}

const apertureSelect = `
SELECT
	v.modelId,
	v.uuid,
	v.name,
	v.fileName,
	datetime(v.imageDate + %[1]d, 'unixepoch') AS date_captured,
	datetime(v.createDate + %[1]d, 'unixepoch') AS date_created,
	v.masterWidth,
	v.masterHeight,
	v.exifLatitude,
	v.exifLongitude,
	v.isFlagged,
	v.isHidden,
	v.mainRating,
	m.imagePath,
	m.fileName AS masterFileName,
	m.fileSize
FROM RKVersion v
LEFT JOIN RKMaster m ON v.masterUuid = m.uuid
`

func apertureQuery(where, tail string) string {
	return fmt.Sprintf(apertureSelect, coreDataEpoch) + where + tail
}

// PhotosForYear returns the year's records, trash excluded, ordered by
// capture timestamp ascending. The ordering is part of the export pipeline's
// contract.
func (l *ApertureLibrary) PhotosForYear(ctx context.Context, year int) ([]domain.PhotoRecord, error) {
	where := fmt.Sprintf(`WHERE v.isInTrash = 0
	AND v.imageDate IS NOT NULL
	AND CAST(strftime('%%Y', datetime(v.imageDate + %d, 'unixepoch')) AS INTEGER) = ?
`, coreDataEpoch)
	return l.queryRecords(ctx, apertureQuery(where, "ORDER BY v.imageDate ASC"), year)
}

func (l *ApertureLibrary) PhotoByUUID(ctx context.Context, uuid string) (domain.PhotoRecord, error) {
	records, err := l.queryRecords(ctx, apertureQuery("WHERE v.uuid = ? COLLATE NOCASE\n", "LIMIT 1"), uuid)
	if err != nil {
		return domain.PhotoRecord{}, err
	}
	if len(records) == 0 {
		return domain.PhotoRecord{}, sql.ErrNoRows
	}
	return records[0], nil
}

func (l *ApertureLibrary) AllPhotos(ctx context.Context, limit int) ([]domain.PhotoRecord, error) {
	tail := "ORDER BY v.imageDate ASC"
	if limit > 0 {
		tail += " LIMIT " + strconv.Itoa(limit)
	}
	return l.queryRecords(ctx, apertureQuery("WHERE v.isInTrash = 0\n", tail))
}

func (l *ApertureLibrary) YearCounts(ctx context.Context) (map[int]int, error) {
	query := fmt.Sprintf(`
SELECT
	CAST(strftime('%%Y', datetime(v.imageDate + %d, 'unixepoch')) AS INTEGER) AS year,
	COUNT(*) AS count
FROM RKVersion v
WHERE v.isInTrash = 0
	AND v.imageDate IS NOT NULL
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

func (l *ApertureLibrary) queryRecords(ctx context.Context, query string, args ...any) ([]domain.PhotoRecord, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PhotoRecord
	for rows.Next() {
		var (
			modelID        int64
			uuid           string
			name           sql.NullString
			fileName       sql.NullString
			dateCaptured   sql.NullString
			dateCreated    sql.NullString
			width          sql.NullInt64
			height         sql.NullInt64
			lat            sql.NullFloat64
			lon            sql.NullFloat64
			flagged        sql.NullInt64
			hidden         sql.NullInt64
			rating         sql.NullInt64
			imagePath      sql.NullString
			masterFileName sql.NullString
			fileSize       sql.NullInt64
		)
		if err := rows.Scan(&modelID, &uuid, &name, &fileName, &dateCaptured, &dateCreated,
			&width, &height, &lat, &lon, &flagged, &hidden, &rating,
			&imagePath, &masterFileName, &fileSize); err != nil {
			return nil, err
		}

		record := domain.PhotoRecord{
			UUID:        uuid,
			Name:        name.String,
			Filename:    fileName.String,
			CaptureDate: dateCaptured.String,
			DateCreated: dateCreated.String,
			Width:       width.Int64,
			Height:      height.Int64,
			FileSize:    fileSize.Int64,
			Rating:      rating.Int64,
			Flagged:     flagged.Int64 != 0,
			Hidden:      hidden.Int64 != 0,
			Locator: domain.SourceLocator{
				RelativePath: imagePath.String,
				FallbackName: firstNonEmpty(masterFileName.String, fileName.String),
			},
		}
		if lat.Valid && lon.Valid {
			record.GPS = &domain.Coordinate{Latitude: lat.Float64, Longitude: lon.Float64}
		}
		record.Capture = l.captureMetadata(ctx, modelID)
		records = append(records, record)
	}
	return records, rows.Err()
}

// captureMetadata reads the version's EXIF key/value store out of
// Properties.apdb. String and number properties live in separate tables;
// unknown keys are ignored.
func (l *ApertureLibrary) captureMetadata(ctx context.Context, versionID int64) domain.CaptureMetadata {
	var meta domain.CaptureMetadata
	if l.props == nil {
		return meta
	}

	stringQuery := `
SELECT ep.propertyKey, us.stringProperty
FROM RKExifStringProperty ep
LEFT JOIN RKUniqueString us ON ep.stringId = us.modelId
WHERE ep.versionId = ?
`
	if rows, err := l.props.QueryContext(ctx, stringQuery, versionID); err == nil {
		for rows.Next() {
			var key string
			var value sql.NullString
			if rows.Scan(&key, &value) != nil || !value.Valid {
				continue
			}
			switch key {
			case "Make":
				meta.CameraMake = strPtr(value)
			case "Model":
				meta.CameraModel = strPtr(value)
			case "LensModel":
				meta.LensModel = strPtr(value)
			}
		}
		rows.Close()
	}

	numberQuery := `
SELECT propertyKey, numberProperty
FROM RKExifNumberProperty
WHERE versionId = ?
`
	if rows, err := l.props.QueryContext(ctx, numberQuery, versionID); err == nil {
		for rows.Next() {
			var key string
			var value sql.NullFloat64
			if rows.Scan(&key, &value) != nil || !value.Valid {
				continue
			}
			switch key {
			case "ApertureValue":
				meta.Aperture = f64Ptr(value)
			case "FocalLength":
				meta.FocalLength = f64Ptr(value)
			case "ISOSpeedRating":
				iso := int64(value.Float64)
				meta.ISO = &iso
			case "ExposureBiasValue":
				meta.ExposureBias = f64Ptr(value)
			case "Flash":
				flash := int64(value.Float64)
				meta.Flash = &flash
			case "Latitude":
				meta.Latitude = f64Ptr(value)
			case "Longitude":
				meta.Longitude = f64Ptr(value)
			}
		}
		rows.Close()
	}

	return meta
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
