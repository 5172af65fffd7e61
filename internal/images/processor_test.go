package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeRendition(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestProcessRenditions(t *testing.T) {
	result, err := Process(pngFixture(t, 1200, 900), "beach.png")
	require.NoError(t, err)

	// All three share one random base name
	assert.Equal(t, result.Original.Filename, result.Thumbnail.Filename)
	assert.Equal(t, result.Original.Filename, result.Medium.Filename)
	assert.Regexp(t, `^[0-9a-f]{32}\.jpg$`, result.Original.Filename)
	assert.Equal(t, "original", result.Original.Folder)
	assert.Equal(t, "thumbnail", result.Thumbnail.Folder)
	assert.Equal(t, "medium", result.Medium.Folder)

	original := decodeRendition(t, result.Original.Data)
	assert.Equal(t, 1200, original.Bounds().Dx())
	assert.Equal(t, 900, original.Bounds().Dy())

	// Thumbnails are square center crops
	thumb := decodeRendition(t, result.Thumbnail.Data)
	assert.Equal(t, 200, thumb.Bounds().Dx())
	assert.Equal(t, 200, thumb.Bounds().Dy())

	// Mediums fit inside the bound, aspect preserved
	medium := decodeRendition(t, result.Medium.Data)
	assert.Equal(t, 800, medium.Bounds().Dx())
	assert.Equal(t, 600, medium.Bounds().Dy())
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(pngFixture(t, 400, 300), "tiny.png")
	require.NoError(t, err)

	medium := decodeRendition(t, result.Medium.Data)
	assert.Equal(t, 400, medium.Bounds().Dx())
	assert.Equal(t, 300, medium.Bounds().Dy())

	// The thumbnail still comes out square
	thumb := decodeRendition(t, result.Thumbnail.Data)
	assert.Equal(t, 200, thumb.Bounds().Dx())
	assert.Equal(t, 200, thumb.Bounds().Dy())
}

func TestProcessGarbageInput(t *testing.T) {
	_, err := Process([]byte("definitely not an image"), "broken.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.jpg")
}

func TestProcessUniqueFilenames(t *testing.T) {
	data := pngFixture(t, 100, 100)
	first, err := Process(data, "a.png")
	require.NoError(t, err)
	second, err := Process(data, "a.png")
	require.NoError(t, err)
	assert.NotEqual(t, first.Original.Filename, second.Original.Filename)
}

func TestExtractMetadata(t *testing.T) {
	meta := ExtractMetadata(pngFixture(t, 320, 240))
	assert.Equal(t, 320, meta["width"])
	assert.Equal(t, 240, meta["height"])
	assert.Equal(t, "png", meta["format"])

	// PNG carries no EXIF; that is fine, dimensions still come through
	_, hasOrientation := meta["orientation"]
	assert.False(t, hasOrientation)
}

func TestExtractMetadataGarbage(t *testing.T) {
	meta := ExtractMetadata([]byte("not an image"))
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}
