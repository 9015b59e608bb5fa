package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"strings"

	"github.com/disintegration/imaging"
)

// Compressor re-encodes image data URLs into bounded JPEGs. It is built
// once at startup and injected wherever compression is needed.
type Compressor struct {
	MaxDim  int
	Quality int
}

// NewCompressor returns a compressor with the production bounds:
// longest side 1280px, JPEG quality 72.
func NewCompressor() *Compressor {
	return &Compressor{MaxDim: 1280, Quality: 72}
}

// CompressDataURL decodes an image data URL, fits it inside MaxDim and
// re-encodes as JPEG. An undecodable payload or an unsupported image format
// is a hard error: passing an oversized original through silently would
// defeat the intake guard.
func (c *Compressor) CompressDataURL(dataURL string) (string, error) {
	comma := strings.IndexByte(dataURL, ',')
	if comma < 0 || !strings.HasPrefix(dataURL, dataURLImagePrefix) {
		return "", fmt.Errorf("not an image data URL")
	}
	payload, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(payload), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("unsupported image format (need JPEG, PNG, GIF, TIFF or BMP): %w", err)
	}

	fitted := imaging.Fit(img, c.MaxDim, c.MaxDim, imaging.Lanczos)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, fitted, &jpeg.Options{Quality: c.Quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// CompressAll compresses each image in order, failing on the first error.
func (c *Compressor) CompressAll(dataURLs []string) ([]string, error) {
	out := make([]string, 0, len(dataURLs))
	for i, u := range dataURLs {
		compressed, err := c.CompressDataURL(u)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
		out = append(out, compressed)
	}
	return out, nil
}
