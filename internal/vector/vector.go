// Package vector wraps svgo for preview documents. svgo takes integer
// coordinates, so documents declare a viewBox Precision times larger than
// their pixel size and every length goes through U.
package vector

import (
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// Precision is the number of user units per pixel.
const Precision = 100

// Doc is an svgo canvas in Precision-scaled user units.
type Doc struct {
	*svg.SVG
}

func New(w io.Writer) *Doc {
	return &Doc{SVG: svg.New(w)}
}

// Begin opens a width×height pixel document.
func (d *Doc) Begin(width, height int) {
	d.Startview(width, height, 0, 0, width*Precision, height*Precision)
}

// U converts pixels to user units.
func U(v float64) int {
	return int(math.Round(v * Precision))
}

// Us converts a list of pixel values.
func Us(vs ...float64) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = U(v)
	}
	return out
}

// Percent converts a 0..1 fraction to svgo's gradient percentages.
func Percent(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 100))
}

// Num formats a unitless attribute value such as an opacity.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
