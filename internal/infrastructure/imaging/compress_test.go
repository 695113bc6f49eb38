package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"
)

// noisyImage produces an image that compresses poorly, so the quality
// loop has real work to do.
func noisyImage(width, height int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCompressShrinksLargeImage(t *testing.T) {
	original := encodeJPEG(t, noisyImage(400, 400))
	maxBytes := len(original) / 4

	out, err := Compress(original, maxBytes)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if len(out) > maxBytes {
		t.Errorf("compressed size = %d, want <= %d", len(out), maxBytes)
	}

	if _, _, err := image.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output does not decode: %v", err)
	}
}

func TestCompressAcceptsPNGInputAndEmitsJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, noisyImage(50, 50)); err != nil {
		t.Fatal(err)
	}

	out, err := Compress(buf.Bytes(), DefaultMaxBytes)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format = %q, want %q", format, "jpeg")
	}
}

func TestCompressStopsAtMinimumQuality(t *testing.T) {
	original := encodeJPEG(t, noisyImage(200, 200))

	// An impossible budget still returns the best effort instead of looping.
	out, err := Compress(original, 10)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if len(out) == 0 {
		t.Error("compressed output is empty")
	}
}

func TestCompressRejectsNonImageData(t *testing.T) {
	if _, err := Compress([]byte("definitely not an image"), DefaultMaxBytes); err == nil {
		t.Error("Compress() = nil error, want decode failure")
	}
}
