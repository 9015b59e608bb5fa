package images

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataURL(t *testing.T, size int) string {
	t.Helper()
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(make([]byte, size))
}

func TestEstimateDataURLBytes(t *testing.T) {
	assert.Equal(t, 1024.0, EstimateDataURLBytes(dataURL(t, 1024)))
	assert.True(t, math.IsInf(EstimateDataURLBytes("data:image/png;base64,!!!not-base64!!!"), 1))
	assert.True(t, math.IsInf(EstimateDataURLBytes("no comma here"), 1))
}

func TestSanitizeImages_AcceptsWithinLimits(t *testing.T) {
	img := dataURL(t, 1024)
	res := SanitizeStrings([]string{img}, DefaultOptions())
	assert.Empty(t, res.Err)
	require.Len(t, res.Images, 1)
	assert.Equal(t, img, res.Images[0])
	assert.Equal(t, 1024, res.TotalBytes)
}

func TestSanitizeImages_NonArrayAndNonImageInput(t *testing.T) {
	res := SanitizeImages("not a slice", DefaultOptions())
	assert.Empty(t, res.Err)
	assert.Empty(t, res.Images)

	// Non-strings and non-data-URLs are skipped, not errors.
	res = SanitizeImages([]any{42, "http://example.com/a.jpg", nil, dataURL(t, 10)}, DefaultOptions())
	assert.Empty(t, res.Err)
	assert.Len(t, res.Images, 1)
	assert.Equal(t, 10, res.TotalBytes)
}

func TestSanitizeImages_PerImageCapRejectsBatch(t *testing.T) {
	ok := dataURL(t, 100)
	big := dataURL(t, 3*1024*1024+1)
	res := SanitizeStrings([]string{ok, big}, DefaultOptions())
	assert.Contains(t, res.Err, "smaller")
	assert.Empty(t, res.Images)
	assert.Zero(t, res.TotalBytes)
}

func TestSanitizeImages_TotalCapRejectsBatch(t *testing.T) {
	half := dataURL(t, 512*1024)
	opts := DefaultOptions()
	opts.MaxTotalBytes = 512 * 1024
	res := SanitizeStrings([]string{half, half}, opts)
	assert.Contains(t, res.Err, "total limit")
	assert.Empty(t, res.Images)
}

func TestSanitizeImages_InvalidDataAbortsBatch(t *testing.T) {
	res := SanitizeStrings([]string{dataURL(t, 10), "data:image/png;base64,???"}, DefaultOptions())
	assert.Equal(t, "invalid image data", res.Err)
	assert.Empty(t, res.Images)
}

func TestSanitizeImages_CountCapStopsQuietly(t *testing.T) {
	imgs := make([]string, 6)
	for i := range imgs {
		imgs[i] = dataURL(t, 10)
	}
	res := SanitizeStrings(imgs, DefaultOptions())
	assert.Empty(t, res.Err)
	assert.Len(t, res.Images, 4)
	assert.Equal(t, 40, res.TotalBytes)
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestCompressDataURL_ResizesAndReencodes(t *testing.T) {
	c := NewCompressor()
	out, err := c.CompressDataURL(pngDataURL(t, 2000, 1000))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	// Output decodes to a JPEG bounded by MaxDim.
	payload, err := base64.StdEncoding.DecodeString(strings.SplitN(out, ",", 2)[1])
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 1280)
	assert.LessOrEqual(t, cfg.Height, 1280)
}

func TestCompressDataURL_RejectsGarbage(t *testing.T) {
	c := NewCompressor()
	_, err := c.CompressDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")

	_, err = c.CompressDataURL("https://example.com/a.png")
	require.Error(t, err)
}

func TestCompressAll_FailsOnFirstBadImage(t *testing.T) {
	c := NewCompressor()
	_, err := c.CompressAll([]string{pngDataURL(t, 10, 10), "data:image/png;base64,???"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image 2")
}
