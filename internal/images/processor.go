// processor.go
//
// Family photo sharing backend for kids' memories.

package images

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Rendition geometry. Thumbnails are square center crops, mediums fit inside
// the bound without upscaling, originals keep their dimensions.
const (
	thumbnailSize = 200
	mediumSize    = 800

	originalQuality  = 90
	thumbnailQuality = 80
	mediumQuality    = 85
)

// Rendition is one derived image ready for the storage adapter.
type Rendition struct {
	// Folder is the sub-folder under the photos root ("original",
	// "thumbnail", "medium").
	Folder   string
	Filename string
	Data     []byte
}

// Result carries the three renditions derived from one upload. All share one
// random identifier and differ only by sub-folder.
type Result struct {
	Original  Rendition
	Thumbnail Rendition
	Medium    Rendition
}

// Process derives the three renditions from a raw image buffer. The source is
// auto-rotated per its orientation metadata before encoding, so the stored
// JPEGs need no orientation tag.
func Process(data []byte, originalFilename string) (*Result, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", originalFilename, err)
	}

	baseFilename := randomIdentifier() + ".jpg"

	original, err := encodeJPEG(src, originalQuality)
	if err != nil {
		return nil, err
	}

	thumb, err := encodeJPEG(imaging.Fill(src, thumbnailSize, thumbnailSize, imaging.Center, imaging.Lanczos), thumbnailQuality)
	if err != nil {
		return nil, err
	}

	medium := src
	if src.Bounds().Dx() > mediumSize || src.Bounds().Dy() > mediumSize {
		medium = imaging.Fit(src, mediumSize, mediumSize, imaging.Lanczos)
	}
	med, err := encodeJPEG(medium, mediumQuality)
	if err != nil {
		return nil, err
	}

	return &Result{
		Original:  Rendition{Folder: "original", Filename: baseFilename, Data: original},
		Thumbnail: Rendition{Folder: "thumbnail", Filename: baseFilename, Data: thumb},
		Medium:    Rendition{Folder: "medium", Filename: baseFilename, Data: med},
	}, nil
}

// ExtractMetadata pulls dimensions, format and EXIF details from the buffer.
// Strictly best-effort: any failure yields an empty map, never an error, so a
// broken camera header cannot fail an upload.
func ExtractMetadata(data []byte) map[string]interface{} {
	meta := make(map[string]interface{})

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return map[string]interface{}{}
	}
	meta["width"] = cfg.Width
	meta["height"] = cfg.Height
	meta["format"] = format

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return meta
	}

	if tag, err := x.Get(exif.Orientation); err == nil {
		if orientation, err := tag.Int(0); err == nil {
			meta["orientation"] = orientation
		}
	}
	if tag, err := x.Get(exif.ColorSpace); err == nil {
		if space, err := tag.Int(0); err == nil {
			meta["color_space"] = space
		}
	}

	// A short raw sample only; full EXIF blobs can run to kilobytes
	if raw := x.Raw; len(raw) > 0 {
		sample := base64.StdEncoding.EncodeToString(raw)
		if len(sample) > 100 {
			sample = sample[:100]
		}
		meta["exif"] = map[string]interface{}{"raw": sample}
	}

	return meta
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode rendition: %w", err)
	}
	return buf.Bytes(), nil
}

// randomIdentifier returns 16 random bytes as hex. Filenames are random, not
// content-derived, so re-uploads never collide.
func randomIdentifier() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
