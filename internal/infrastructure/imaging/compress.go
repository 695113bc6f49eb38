package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Chat platforms deliver photos as JPEG, but users occasionally send
	// documents; register the common decoders.
	_ "image/gif"
	_ "image/png"
)

// DefaultMaxBytes is the payload ceiling for vision API uploads.
const DefaultMaxBytes = 500 * 1024

const (
	startQuality = 95
	minQuality   = 20
	qualityStep  = 5
)

// Compress re-encodes an image as JPEG under maxBytes by stepping the
// quality down from 95 in increments of 5, bottoming out at 20. The result
// is always JPEG even when the input was already small, so downstream
// callers can assume a single mime type.
func Compress(data []byte, maxBytes int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	for quality := startQuality; ; quality -= qualityStep {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		if buf.Len() <= maxBytes || quality <= minQuality {
			return buf.Bytes(), nil
		}
	}
}
