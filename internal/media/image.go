package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

// Uploaded images are normalized to WebP and capped in width; originals
// are not kept.
const (
	MaxUploadBytes = 8 << 20
	maxWidth       = 1600
	webpQuality    = 82
)

// Decode sniffs the payload and decodes jpeg, png or webp. Anything else
// is rejected as an unsupported upload type.
func Decode(data []byte) (image.Image, string, error) {
	contentType := http.DetectContentType(data)

	switch contentType {
	case "image/jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		return img, contentType, err
	case "image/png":
		img, err := png.Decode(bytes.NewReader(data))
		return img, contentType, err
	case "image/webp":
		img, err := webp.Decode(bytes.NewReader(data))
		return img, contentType, err
	}

	return nil, contentType, fmt.Errorf("unsupported image type %s", contentType)
}

// TranscodeWebP decodes, downscales to the width cap and re-encodes as
// WebP.
func TranscodeWebP(data []byte) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	img = capWidth(img, maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}

	return buf.Bytes(), nil
}

func capWidth(img image.Image, max int) image.Image {
	b := img.Bounds()
	if b.Dx() <= max {
		return img
	}

	h := b.Dy() * max / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, max, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
