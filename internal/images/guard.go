// Package images bounds the resource cost of user-submitted photos before
// they reach the LLM gateway or storage.
package images

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
)

const dataURLImagePrefix = "data:image/"

// Options configures the intake thresholds.
type Options struct {
	MaxCount         int
	MaxBytesPerImage int
	MaxTotalBytes    int
}

// DefaultOptions returns the production thresholds: 4 images, 3 MiB each,
// 12 MiB for the whole batch.
func DefaultOptions() Options {
	return Options{
		MaxCount:         4,
		MaxBytesPerImage: 3 * 1024 * 1024,
		MaxTotalBytes:    12 * 1024 * 1024,
	}
}

// Result is the outcome of a sanitize pass. Err is a user-facing message;
// when it is set, Images is always empty.
type Result struct {
	Images     []string `json:"images"`
	TotalBytes int      `json:"totalBytes"`
	Err        string   `json:"error,omitempty"`
}

// SanitizeImages walks the candidate list in order. Non-string entries and
// strings without the image data-URL prefix are skipped silently. One bad or
// oversized image rejects the whole batch rather than being dropped, so a
// user is never surprised by silently missing photos.
func SanitizeImages(raw any, opts Options) Result {
	if opts.MaxCount <= 0 {
		opts = DefaultOptions()
	}

	candidates, _ := raw.([]any)
	accepted := make([]string, 0, opts.MaxCount)
	total := 0

	for _, c := range candidates {
		if len(accepted) >= opts.MaxCount {
			break
		}
		s, ok := c.(string)
		if !ok || !strings.HasPrefix(s, dataURLImagePrefix) {
			continue
		}

		size := EstimateDataURLBytes(s)
		if math.IsInf(size, 1) {
			return Result{Images: []string{}, Err: "invalid image data"}
		}
		bytes := int(size)
		if bytes > opts.MaxBytesPerImage {
			return Result{
				Images: []string{},
				Err:    fmt.Sprintf("an image is too large; please upload images smaller than %s", formatBytes(opts.MaxBytesPerImage)),
			}
		}
		if total+bytes > opts.MaxTotalBytes {
			return Result{
				Images: []string{},
				Err:    fmt.Sprintf("images exceed the total limit of %s", formatBytes(opts.MaxTotalBytes)),
			}
		}

		accepted = append(accepted, s)
		total += bytes
	}

	return Result{Images: accepted, TotalBytes: total}
}

// SanitizeStrings is SanitizeImages for an already-typed string slice.
func SanitizeStrings(images []string, opts Options) Result {
	raw := make([]any, len(images))
	for i, s := range images {
		raw[i] = s
	}
	return SanitizeImages(raw, opts)
}

// EstimateDataURLBytes returns the decoded byte length of a data URL's
// base64 payload, or +Inf when the payload cannot be decoded. The caller
// treats +Inf as "unusable" without anything being raised.
func EstimateDataURLBytes(dataURL string) float64 {
	comma := strings.IndexByte(dataURL, ',')
	if comma < 0 {
		return math.Inf(1)
	}
	payload := dataURL[comma+1:]
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return math.Inf(1)
	}
	return float64(len(decoded))
}

func formatBytes(n int) string {
	const mb = 1024 * 1024
	if n >= mb {
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	}
	return fmt.Sprintf("%d KB", n/1024)
}
