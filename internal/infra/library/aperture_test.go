package library

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func coreDataTime(t time.Time) int64 {
	return t.Unix() - coreDataEpoch
}

const apertureSchema = `
CREATE TABLE RKVersion (
	modelId INTEGER PRIMARY KEY,
	uuid TEXT,
	masterUuid TEXT,
	name TEXT,
	fileName TEXT,
	imageDate REAL,
	createDate REAL,
	masterWidth INTEGER,
	masterHeight INTEGER,
	exifLatitude REAL,
	exifLongitude REAL,
	isFlagged INTEGER,
	isHidden INTEGER,
	mainRating INTEGER,
	isInTrash INTEGER
);
CREATE TABLE RKMaster (
	uuid TEXT,
	imagePath TEXT,
	fileName TEXT,
	fileSize INTEGER
);
`

const propertiesSchema = `
CREATE TABLE RKExifStringProperty (
	versionId INTEGER,
	propertyKey TEXT,
	stringId INTEGER
);
CREATE TABLE RKUniqueString (
	modelId INTEGER PRIMARY KEY,
	stringProperty TEXT
);
CREATE TABLE RKExifNumberProperty (
	versionId INTEGER,
	propertyKey TEXT,
	numberProperty REAL
);
`

func createApertureFixture(t *testing.T) string {
	t.Helper()
	libraryPath := t.TempDir()
	dbDir := filepath.Join(libraryPath, "Database", "apdb")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, "Library.apdb"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(apertureSchema); err != nil {
		t.Fatal(err)
	}

	insert := `INSERT INTO RKVersion
		(modelId, uuid, masterUuid, name, fileName, imageDate, createDate,
		 masterWidth, masterHeight, exifLatitude, exifLongitude,
		 isFlagged, isHidden, mainRating, isInTrash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	base := time.Date(2009, 7, 14, 16, 2, 11, 0, time.UTC)
	rows := []struct {
		id       int64
		uuid     string
		captured time.Time
		trashed  int
	}{
		{2, "uuid-second", base.Add(time.Hour), 0},
		{1, "uuid-first", base, 0},
		{3, "uuid-trashed", base.Add(2 * time.Hour), 1},
		{4, "uuid-2010", base.AddDate(1, 0, 0), 0},
	}
	for _, row := range rows {
		_, err := db.Exec(insert,
			row.id, row.uuid, "master-"+row.uuid, "Photo "+row.uuid, row.uuid+".jpg",
			coreDataTime(row.captured), coreDataTime(row.captured),
			4000, 3000, 48.1375, 11.575,
			0, 0, 3, row.trashed)
		if err != nil {
			t.Fatal(err)
		}
	}

	if _, err := db.Exec(`INSERT INTO RKMaster (uuid, imagePath, fileName, fileSize)
		VALUES ('master-uuid-first', '2009/07/uuid-first.jpg', 'uuid-first.jpg', 123456)`); err != nil {
		t.Fatal(err)
	}

	props, err := sql.Open("sqlite3", filepath.Join(dbDir, "Properties.apdb"))
	if err != nil {
		t.Fatal(err)
	}
	defer props.Close()
	if _, err := props.Exec(propertiesSchema); err != nil {
		t.Fatal(err)
	}
	if _, err := props.Exec(`INSERT INTO RKUniqueString (modelId, stringProperty) VALUES (10, 'Canon'), (11, 'EOS 5D')`); err != nil {
		t.Fatal(err)
	}
	if _, err := props.Exec(`INSERT INTO RKExifStringProperty (versionId, propertyKey, stringId)
		VALUES (1, 'Make', 10), (1, 'Model', 11)`); err != nil {
		t.Fatal(err)
	}
	if _, err := props.Exec(`INSERT INTO RKExifNumberProperty (versionId, propertyKey, numberProperty)
		VALUES (1, 'ApertureValue', 2.8), (1, 'ISOSpeedRating', 400), (1, 'FocalLength', 24.0)`); err != nil {
		t.Fatal(err)
	}

	return libraryPath
}

func TestApertureFlavorDetection(t *testing.T) {
	libraryPath := createApertureFixture(t)

	source, err := Open(libraryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	layout := source.Layout()
	if layout.PrimaryDir != "Masters" || layout.SecondaryDir != "Previews" {
		t.Fatalf("layout: %+v", layout)
	}
}

func TestOpenRejectsUnknownDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("expected ErrNoDatabase, got %v", err)
	}
}

func TestAperturePhotosForYear(t *testing.T) {
	source, err := Open(createApertureFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	records, err := source.PhotosForYear(context.Background(), 2009)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (trash and other years excluded), got %d", len(records))
	}
	if records[0].UUID != "uuid-first" || records[1].UUID != "uuid-second" {
		t.Fatalf("ordering must be capture-ascending: %s, %s", records[0].UUID, records[1].UUID)
	}

	first := records[0]
	if first.CaptureDate != "2009-07-14 16:02:11" {
		t.Errorf("capture date: got %q", first.CaptureDate)
	}
	if first.Locator.RelativePath != "2009/07/uuid-first.jpg" {
		t.Errorf("relative path: got %q", first.Locator.RelativePath)
	}
	if first.Locator.FallbackName != "uuid-first.jpg" {
		t.Errorf("fallback name: got %q", first.Locator.FallbackName)
	}
	if first.GPS == nil || first.GPS.Latitude != 48.1375 {
		t.Errorf("gps: %+v", first.GPS)
	}
	if first.FileSize != 123456 {
		t.Errorf("file size: got %d", first.FileSize)
	}

	meta := first.Capture
	if meta.CameraMake == nil || *meta.CameraMake != "Canon" {
		t.Errorf("camera make: %v", meta.CameraMake)
	}
	if meta.CameraModel == nil || *meta.CameraModel != "EOS 5D" {
		t.Errorf("camera model: %v", meta.CameraModel)
	}
	if meta.Aperture == nil || *meta.Aperture != 2.8 {
		t.Errorf("aperture: %v", meta.Aperture)
	}
	if meta.ISO == nil || *meta.ISO != 400 {
		t.Errorf("iso: %v", meta.ISO)
	}
}

func TestAperturePhotoByUUIDCaseInsensitive(t *testing.T) {
	source, err := Open(createApertureFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	record, err := source.PhotoByUUID(context.Background(), "UUID-FIRST")
	if err != nil {
		t.Fatal(err)
	}
	if record.UUID != "uuid-first" {
		t.Fatalf("got %q", record.UUID)
	}

	if _, err := source.PhotoByUUID(context.Background(), "nope"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestApertureAllPhotosLimit(t *testing.T) {
	source, err := Open(createApertureFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	records, err := source.AllPhotos(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("limit ignored, got %d records", len(records))
	}

	all, err := source.AllPhotos(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 non-trashed records, got %d", len(all))
	}
}

func TestApertureYearCounts(t *testing.T) {
	source, err := Open(createApertureFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	counts, err := source.YearCounts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if counts[2009] != 2 || counts[2010] != 1 {
		t.Fatalf("counts: %v", counts)
	}
}

func TestApertureWorksWithoutPropertiesDB(t *testing.T) {
	libraryPath := createApertureFixture(t)
	if err := os.Remove(filepath.Join(libraryPath, "Database", "apdb", "Properties.apdb")); err != nil {
		t.Fatal(err)
	}

	source, err := Open(libraryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	records, err := source.PhotosForYear(context.Background(), 2009)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].Capture.CameraMake != nil {
		t.Fatal("without the properties database records carry no camera settings")
	}
}
