package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// TestDecode verifies the content sniffing path and the rejection of
// non-image payloads.
func TestDecode(t *testing.T) {
	data := solidPNG(t, 10, 10, color.RGBA{R: 255, A: 255})

	img, contentType, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("expected image/png, got %s", contentType)
	}
	if img.Bounds().Dx() != 10 {
		t.Errorf("unexpected bounds: %v", img.Bounds())
	}

	if _, _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Error("text payload must be rejected")
	}
}

// TestTranscodeWebP verifies the WebP re-encode and the width cap.
func TestTranscodeWebP(t *testing.T) {
	wide := solidPNG(t, maxWidth*2, 100, color.RGBA{G: 200, A: 255})

	out, err := TranscodeWebP(wide)
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != maxWidth {
		t.Errorf("expected width capped at %d, got %d", maxWidth, img.Bounds().Dx())
	}
	if img.Bounds().Dy() != 50 {
		t.Errorf("expected height scaled to 50, got %d", img.Bounds().Dy())
	}

	small := solidPNG(t, 100, 100, color.RGBA{B: 200, A: 255})
	out, err = TranscodeWebP(small)
	if err != nil {
		t.Fatalf("transcode small: %v", err)
	}
	img, err = webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode small output: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("images under the cap must keep their size, got %d", img.Bounds().Dx())
	}
}

// TestDominantColor checks the average against solid images.
func TestDominantColor(t *testing.T) {
	red := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			red.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	if got := DominantColor(red); got != "#ff0000" {
		t.Errorf("solid red: expected #ff0000, got %s", got)
	}

	empty := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if got := DominantColor(empty); got != "#000000" {
		t.Errorf("fully transparent: expected #000000 fallback, got %s", got)
	}
}
