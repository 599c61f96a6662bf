package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Whiten fades img toward white by painting a white layer of alpha
// (1-opacity) source-atop: transparent pixels stay transparent and alpha is
// untouched.
func Whiten(img *image.NRGBA, opacity float64) {
	if opacity >= 1 {
		return
	}
	opacity = math.Max(0, opacity)
	white := 255 * (1 - opacity)
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			if row[i+3] == 0 {
				continue
			}
			row[i] = uint8(float64(row[i])*opacity + white + 0.5)
			row[i+1] = uint8(float64(row[i+1])*opacity + white + 0.5)
			row[i+2] = uint8(float64(row[i+2])*opacity + white + 0.5)
		}
	}
}

// PlaceScaled resizes src to w×h and pastes it onto a transparent canvas of
// canvasW×canvasH with its top-left at (x, y). Parts outside the canvas are
// cropped.
func PlaceScaled(src image.Image, canvasW, canvasH, x, y, w, h int) *image.NRGBA {
	canvas := imaging.New(canvasW, canvasH, color.NRGBA{})
	if w <= 0 || h <= 0 {
		return canvas
	}
	var scaled image.Image = src
	if b := src.Bounds(); b.Dx() != w || b.Dy() != h {
		scaled = imaging.Resize(src, w, h, imaging.Lanczos)
	}
	return imaging.Paste(canvas, scaled, image.Pt(x, y))
}
