package imagepkg

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"
)

// BlendMode is the separable compositing operator used when drawing one
// image over another. Names follow the canvas globalCompositeOperation ones.
type BlendMode string

const (
	BlendNormal     BlendMode = "normal"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendDifference BlendMode = "difference"
	BlendExclusion  BlendMode = "exclusion"
)

var blendModes = []BlendMode{
	BlendNormal, BlendMultiply, BlendScreen, BlendOverlay,
	BlendDarken, BlendLighten, BlendDifference, BlendExclusion,
}

// BlendModes lists the supported operators.
func BlendModes() []BlendMode { return append([]BlendMode(nil), blendModes...) }

func ParseBlendMode(s string) (BlendMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "source-over" {
		return BlendNormal, nil
	}
	for _, m := range blendModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedBlend, s)
}

// DrawBlended composites src onto dst with src's top-left at at, using
// opacity as a global alpha and mode as the blend function.
func DrawBlended(dst *image.NRGBA, src image.Image, at image.Point, opacity float64, mode BlendMode) {
	if opacity <= 0 {
		return
	}
	opacity = math.Min(1, opacity)
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	s := image.NewNRGBA(sb)
	draw.Draw(s, sb, src, sb.Min, draw.Src)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			si := s.PixOffset(x-at.X+sb.Min.X, y-at.Y+sb.Min.Y)
			as := float64(s.Pix[si+3]) / 255 * opacity
			if as == 0 {
				continue
			}
			di := dst.PixOffset(x, y)
			ab := float64(dst.Pix[di+3]) / 255
			ao := as + ab*(1-as)
			for c := 0; c < 3; c++ {
				cs := float64(s.Pix[si+c]) / 255
				cb := float64(dst.Pix[di+c]) / 255
				mixed := (1-ab)*cs + ab*blend(mode, cb, cs)
				co := as*mixed + (1-as)*ab*cb
				dst.Pix[di+c] = uint8(clamp01(co/ao)*255 + 0.5)
			}
			dst.Pix[di+3] = uint8(clamp01(ao)*255 + 0.5)
		}
	}
}

func blend(mode BlendMode, cb, cs float64) float64 {
	switch mode {
	case BlendMultiply:
		return cb * cs
	case BlendScreen:
		return cb + cs - cb*cs
	case BlendOverlay:
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	case BlendDarken:
		return math.Min(cb, cs)
	case BlendLighten:
		return math.Max(cb, cs)
	case BlendDifference:
		return math.Abs(cb - cs)
	case BlendExclusion:
		return cb + cs - 2*cb*cs
	default:
		return cs
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
