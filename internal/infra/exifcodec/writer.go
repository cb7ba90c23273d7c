package exifcodec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	goexif "github.com/rwcarlsen/goexif/exif"

	"apextract/internal/app"
	"apextract/internal/domain"
	"apextract/internal/logging"
)

const jpegQuality = 95

// NewWriter selects the metadata capability for this process. The JPEG codec
// handles the full embed/preserve/copy chain; copyOnly degrades everything to
// a raw copy.
func NewWriter(fs app.FileSystem, logger logging.Logger, copyOnly bool) app.MetadataWriter {
	if copyOnly {
		return &copyWriter{fs: fs}
	}
	return &jpegWriter{fs: fs, logger: logger}
}

// copyWriter is the capability floor: byte-for-byte copies with timestamps.
type copyWriter struct {
	fs app.FileSystem
}

func (w *copyWriter) Write(src, dest string, _ *domain.ExifPayload) (domain.WriteMode, error) {
	if err := w.fs.CopyFile(src, dest); err != nil {
		return domain.WriteCopied, err
	}
	copyTimestamps(w.fs, src, dest)
	return domain.WriteCopied, nil
}

// jpegWriter writes destination JPEGs through a three-tier fallback:
// embed the payload, preserve whatever the source carries, raw copy. Each
// tier's failure is logged as a warning and falls through; only a raw-copy
// failure surfaces to the caller.
type jpegWriter struct {
	fs     app.FileSystem
	logger logging.Logger
}

func (w *jpegWriter) Write(src, dest string, payload *domain.ExifPayload) (domain.WriteMode, error) {
	if payload != nil && !payload.IsEmpty() {
		if err := w.writeEmbedded(src, dest, payload); err == nil {
			copyTimestamps(w.fs, src, dest)
			return domain.WriteEmbedded, nil
		} else {
			w.logger.Warnf("could not embed metadata for %s: %v", filepath.Base(src), err)
		}
	}

	if err := w.writePreserved(src, dest); err == nil {
		copyTimestamps(w.fs, src, dest)
		return domain.WritePreserved, nil
	} else {
		w.logger.Warnf("could not re-encode %s, copying as-is: %v", filepath.Base(src), err)
	}

	if err := w.fs.CopyFile(src, dest); err != nil {
		return domain.WriteCopied, err
	}
	copyTimestamps(w.fs, src, dest)
	return domain.WriteCopied, nil
}

// writeEmbedded decodes the source, merges the payload into its EXIF block
// (starting from an empty block when the source has none) and writes the
// destination JPEG. The codec libraries panic on malformed input, so the
// whole tier runs under a recover.
func (w *jpegWriter) writeEmbedded(src, dest string, payload *domain.ExifPayload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jpeg codec: %v", r)
		}
	}()

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	jpegData, err := asJPEG(data)
	if err != nil {
		return err
	}

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(jpegData)
	if err != nil {
		return err
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		rootIb, err = newExifBuilder()
		if err != nil {
			return err
		}
	}

	if err := applyPayload(rootIb, payload); err != nil {
		return err
	}
	if err := sl.SetExif(rootIb); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := sl.Write(&buf); err != nil {
		return err
	}
	return os.WriteFile(dest, buf.Bytes(), 0o644)
}

// writePreserved re-materializes the source without an explicit payload. A
// JPEG source is copied byte-identically, which keeps its embedded metadata
// intact; anything else is converted to the canonical output format.
func (w *jpegWriter) writePreserved(src, dest string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("image codec: %v", r)
		}
	}()

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	if isJPEG(data) {
		if hasExif(data) {
			w.logger.Verbosef("preserving existing metadata of %s", filepath.Base(src))
		}
		return os.WriteFile(dest, data, 0o644)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	w.logger.Verbosef("converting %s source %s to jpeg", format, filepath.Base(src))

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// asJPEG returns data unchanged when it already is a JPEG, otherwise
// re-encodes it as one.
func asJPEG(data []byte) ([]byte, error) {
	if isJPEG(data) {
		return data, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isJPEG(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8
}

func hasExif(data []byte) bool {
	_, err := goexif.Decode(bytes.NewReader(data))
	return err == nil
}

// copyTimestamps carries the source modification time onto the destination.
// Best effort only; a failure is not an export error.
func copyTimestamps(fs app.FileSystem, src, dest string) {
	info, err := fs.Stat(src)
	if err != nil {
		return
	}
	_ = fs.Chtimes(dest, info.ModTime(), info.ModTime())
}
