package media

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// DominantColor approximates the dominant color of an image as a hex
// string. The image is scaled down to a small sample first so the average
// is cheap and noise-resistant; good enough for deriving a brand color
// from an org logo.
func DominantColor(img image.Image) string {
	const sample = 16

	dst := image.NewRGBA(image.Rect(0, 0, sample, sample))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)

	var rSum, gSum, bSum, count uint64
	for y := 0; y < sample; y++ {
		for x := 0; x < sample; x++ {
			r, g, b, a := dst.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(b >> 8)
			count++
		}
	}

	if count == 0 {
		return "#000000"
	}

	return fmt.Sprintf("#%02x%02x%02x", rSum/count, gSum/count, bSum/count)
}
