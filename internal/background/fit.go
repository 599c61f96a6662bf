// Package background fills the bottom layer of a card: a flat color, a
// linear gradient or a fitted, blurred and faded image.
package background

import (
	"math"

	"github.com/youruser/cardgen/internal/card"
)

// Rect is a placement in logical card units.
type Rect struct {
	X, Y, W, H float64
}

// Fit places an imgW×imgH image on a w×h card. Unknown modes behave like
// contain.
func Fit(mode card.ImageFit, imgW, imgH, w, h float64) Rect {
	if imgW <= 0 || imgH <= 0 {
		return Rect{}
	}
	imgRatio := imgW / imgH
	canvasRatio := w / h

	switch mode {
	case card.FitCover:
		if imgRatio > canvasRatio {
			dw := h * imgRatio
			return Rect{X: (w - dw) / 2, W: dw, H: h}
		}
		dh := w / imgRatio
		return Rect{Y: (h - dh) / 2, W: w, H: dh}
	case card.FitOriginal:
		// native size, shrunk only as far as the overflowing axis needs
		s := math.Min(1, math.Min(w/imgW, h/imgH))
		dw, dh := imgW*s, imgH*s
		return Rect{X: (w - dw) / 2, Y: (h - dh) / 2, W: dw, H: dh}
	}
	if imgRatio > canvasRatio {
		dh := w / imgRatio
		return Rect{Y: (h - dh) / 2, W: w, H: dh}
	}
	dw := h * imgRatio
	return Rect{X: (w - dw) / 2, W: dw, H: h}
}

// GradientLine returns the gradient axis for angle degrees on a w×h card:
// centre ∓ (cos θ·w/2, sin θ·h/2). Preview and export share it.
func GradientLine(angle, w, h float64) (x1, y1, x2, y2 float64) {
	rad := angle * math.Pi / 180
	dx := math.Cos(rad) * w / 2
	dy := math.Sin(rad) * h / 2
	return w/2 - dx, h/2 - dy, w/2 + dx, h/2 + dy
}

// StopOffset is the position of stop i of n along the gradient axis.
func StopOffset(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}
