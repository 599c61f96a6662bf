package background

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"

	"github.com/youruser/cardgen/internal/card"
	imagepkg "github.com/youruser/cardgen/internal/image"
)

// FallbackColor fills the card when the background image cannot be decoded.
const FallbackColor = "#f0f0f0"

// Painter draws backgrounds onto gg contexts.
type Painter struct {
	Loader *imagepkg.Loader
	Logger zerolog.Logger
}

// Prepare starts decoding the background image so the caller can allocate
// its canvas meanwhile. It returns nil when bg does not need an image.
func (p *Painter) Prepare(ctx context.Context, bg card.Background) *imagepkg.Pending {
	if bg.Mode != card.BackgroundImage || bg.ImageRef == "" || p.Loader == nil {
		return nil
	}
	return p.Loader.Start(ctx, bg.ImageRef)
}

// Paint fills a w×h logical card on dc, whose matrix is already scaled by
// scale. pending may be nil; an image background then decodes inline.
// A failed decode is logged and replaced by FallbackColor; only context
// cancellation is returned as an error.
func (p *Painter) Paint(ctx context.Context, dc *gg.Context, bg card.Background, pending *imagepkg.Pending, w, h, scale float64) error {
	switch bg.Mode {
	case card.BackgroundColor:
		fill(dc, card.MustColor(bg.Color), w, h)
	case card.BackgroundGradient:
		paintGradient(dc, bg, w, h, scale)
	case card.BackgroundImage:
		if pending == nil {
			pending = p.Prepare(ctx, bg)
		}
		if pending == nil {
			return nil
		}
		img, err := pending.Wait(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			p.Logger.Warn().Err(err).Str("ref", shortRef(bg.ImageRef)).Msg("background image unavailable, using fallback fill")
			fill(dc, card.MustColor(FallbackColor), w, h)
			return nil
		}
		layer := Layer(img, bg, w, h, scale)
		dc.Push()
		dc.Identity()
		dc.DrawImage(layer, 0, 0)
		dc.Pop()
	}
	return nil
}

// Layer renders the processed image background at device resolution:
// fitted, blurred with radius blurPx*3*scale, then whitened by 1-opacity.
func Layer(img image.Image, bg card.Background, w, h, scale float64) *image.NRGBA {
	b := img.Bounds()
	r := Fit(bg.ImageFit, float64(b.Dx()), float64(b.Dy()), w, h)
	layer := imagepkg.PlaceScaled(img,
		device(w, scale), device(h, scale),
		int(math.Round(r.X*scale)), int(math.Round(r.Y*scale)),
		device(r.W, scale), device(r.H, scale))
	if bg.ImageBlurPx > 0 {
		layer = imagepkg.StackBlur(layer, BlurRadius(bg.ImageBlurPx, scale))
	}
	imagepkg.Whiten(layer, bg.ImageOpacity)
	return layer
}

// BlurRadius is the device stack blur radius for a blurPx setting: the
// preview's blur amplified three times, then scaled to device pixels.
func BlurRadius(blurPx, scale float64) int {
	return int(math.Round(blurPx * 3 * scale))
}

func paintGradient(dc *gg.Context, bg card.Background, w, h, scale float64) {
	n := len(bg.GradientStops)
	if n < card.MinGradientStops {
		return
	}
	// gg evaluates gradients in device space.
	x1, y1, x2, y2 := GradientLine(bg.GradientAngle, w, h)
	grad := gg.NewLinearGradient(x1*scale, y1*scale, x2*scale, y2*scale)
	for i, stop := range bg.GradientStops {
		grad.AddColorStop(StopOffset(i, n), card.MustColor(stop))
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

func fill(dc *gg.Context, c color.Color, w, h float64) {
	dc.SetColor(c)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

func device(v, scale float64) int {
	return int(math.Round(v * scale))
}

func shortRef(ref string) string {
	if len(ref) > 64 {
		return ref[:64] + "..."
	}
	return ref
}
