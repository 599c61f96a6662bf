package imagepkg

import (
	"image"

	"github.com/esimov/stackblur-go"
)

// MaxBlurRadius is the largest radius the stack blur tables cover.
const MaxBlurRadius = 254

// StackBlur returns img blurred with a stack blur of the given radius, clamped
// to MaxBlurRadius. A radius below 1 returns img as is.
func StackBlur(img *image.NRGBA, radius int) *image.NRGBA {
	if radius < 1 {
		return img
	}
	out, err := stackblur.Process(img, uint32(min(radius, MaxBlurRadius)))
	if err != nil {
		return img
	}
	return out
}
