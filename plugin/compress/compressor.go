// Package compress shrinks uploaded photos to a target size while keeping
// acceptable visual quality. Compression is best-effort: on any failure the
// original bytes are returned unchanged.
package compress

import (
	"bytes"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// DefaultMaxSizeKB is the default target size in kilobytes.
	DefaultMaxSizeKB = 500
	// DefaultQuality is the default JPEG quality (0-100).
	DefaultQuality = 85
)

// Compressor re-encodes images that exceed a size budget.
type Compressor struct {
	maxSizeKB int
	quality   int
}

// New creates a compressor. Non-positive arguments fall back to defaults.
func New(maxSizeKB, quality int) *Compressor {
	if maxSizeKB <= 0 {
		maxSizeKB = DefaultMaxSizeKB
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Compressor{maxSizeKB: maxSizeKB, quality: quality}
}

// Compress returns a JPEG re-encoding of data scaled down so the result
// approaches the size budget. Images already within the budget, and inputs
// that fail to decode or encode, are returned verbatim.
func (c *Compressor) Compress(data []byte) []byte {
	originalKB := float64(len(data)) / 1024
	if originalKB <= float64(c.maxSizeKB) {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		slog.Warn("failed to decode image, keeping original", "error", err)
		return data
	}

	// Scale both dimensions by the square root of the size ratio so the
	// pixel count shrinks roughly proportionally to the byte budget.
	factor := math.Sqrt(float64(c.maxSizeKB) / originalKB)
	bounds := img.Bounds()
	newWidth := int(float64(bounds.Dx()) * factor)
	if newWidth < 1 {
		newWidth = 1
	}
	resized := imaging.Resize(img, newWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		slog.Warn("failed to encode compressed image, keeping original", "error", err)
		return data
	}

	slog.Info("image compressed",
		"original_kb", int(originalKB),
		"compressed_kb", buf.Len()/1024,
		"width", newWidth)
	return buf.Bytes()
}
