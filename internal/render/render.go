// Package render turns a card configuration into an SVG preview or an
// encoded raster export. Both paths paint background, pattern and text in
// that order from the same geometry.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/rs/zerolog"

	"github.com/youruser/cardgen/internal/background"
	"github.com/youruser/cardgen/internal/card"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/pattern"
	"github.com/youruser/cardgen/internal/textlayout"
)

var (
	ErrInvalidScale = errors.New("render: scale out of range")
	ErrTooLarge     = errors.New("render: export exceeds the pixel limit")
)

const (
	DefaultMaxScale  = 8
	DefaultMaxPixels = 64 << 20
)

type Renderer struct {
	Fonts  *textlayout.Fonts
	Loader *imagepkg.Loader
	Logger zerolog.Logger
	// MaxScale and MaxPixels bound the device canvas of an export.
	MaxScale  int
	MaxPixels int64
	painter   *background.Painter
}

func New(fonts *textlayout.Fonts, loader *imagepkg.Loader, logger zerolog.Logger) *Renderer {
	return &Renderer{
		Fonts:     fonts,
		Loader:    loader,
		Logger:    logger,
		MaxScale:  DefaultMaxScale,
		MaxPixels: DefaultMaxPixels,
		painter:   &background.Painter{Loader: loader, Logger: logger},
	}
}

// CheckScale rejects scales outside [1, MaxScale].
func (r *Renderer) CheckScale(scale int) error {
	if scale < 1 || scale > r.MaxScale {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidScale, scale, r.MaxScale)
	}
	return nil
}

// checkSize rejects canvases that would not fit in MaxPixels before any
// allocation happens.
func (r *Renderer) checkSize(cfg card.CardConfig, scale int) error {
	if err := r.CheckScale(scale); err != nil {
		return err
	}
	w, h := int64(cfg.Dimensions.Width), int64(cfg.Dimensions.Height)
	if w <= 0 || h <= 0 || w > card.MaxDimension || h > card.MaxDimension {
		return card.ErrInvalidDimensions
	}
	s := int64(scale)
	if px := w * s * h * s; px > r.MaxPixels {
		return fmt.Errorf("%w: %d pixels, limit %d", ErrTooLarge, px, r.MaxPixels)
	}
	return nil
}

// Result is an encoded export.
type Result struct {
	Data     []byte
	Filename string
	MIME     string
}

// Filename is the suggested download name for an export.
func Filename(cfg card.CardConfig, scale int, f imaging.Format) string {
	return fmt.Sprintf("high-res-image-%dx%d-%dx.%s", cfg.Dimensions.Width, cfg.Dimensions.Height, scale, imagepkg.Ext(f))
}

// Export rasterises cfg at scale and encodes it. On failure no bytes are
// returned.
func (r *Renderer) Export(ctx context.Context, cfg card.CardConfig, scale int, f imaging.Format) (Result, error) {
	img, err := r.Raster(ctx, cfg, scale)
	if err != nil {
		return Result{}, err
	}
	data, err := imagepkg.Encode(img, f)
	if err != nil {
		return Result{}, err
	}
	r.Logger.Debug().
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Int("bytes", len(data)).
		Msg("card exported")
	return Result{Data: data, Filename: Filename(cfg, scale, f), MIME: imagepkg.MIME(f)}, nil
}

// Raster paints cfg onto a (width*scale)×(height*scale) canvas.
func (r *Renderer) Raster(ctx context.Context, cfg card.CardConfig, scale int) (image.Image, error) {
	if err := r.checkSize(cfg, scale); err != nil {
		return nil, err
	}
	pending := r.painter.Prepare(ctx, cfg.Background)

	w, h := float64(cfg.Dimensions.Width), float64(cfg.Dimensions.Height)
	s := float64(scale)
	dc := gg.NewContext(cfg.Dimensions.Width*scale, cfg.Dimensions.Height*scale)
	dc.Scale(s, s)

	if err := r.painter.Paint(ctx, dc, cfg.Background, pending, w, h, s); err != nil {
		return nil, err
	}
	pattern.Draw(dc, r.Shapes(cfg, scale), s)

	textlayout.Draw(dc, r.Layout(cfg), r.Fonts, card.MustColor(cfg.Text.Color), s)

	if cfg.BorderRadiusPx > 0 {
		return roundCorners(dc.Image(), cfg.BorderRadiusPx*s), nil
	}
	return dc.Image(), nil
}

// Shapes generates the pattern for cfg, boosting the count for scale > 1.
// scale is clamped to [1, MaxScale].
func (r *Renderer) Shapes(cfg card.CardConfig, scale int) []pattern.Shape {
	scale = min(max(scale, 1), r.MaxScale)
	return pattern.FromConfig(cfg, pattern.ExportCount(cfg.Pattern.Count, scale))
}

// Layout positions cfg's text in logical units.
func (r *Renderer) Layout(cfg card.CardConfig) textlayout.Block {
	return textlayout.Layout(r.Fonts, cfg.Text, float64(cfg.Dimensions.Width), float64(cfg.Dimensions.Height))
}

// roundCorners masks img with a rounded rectangle of device radius.
func roundCorners(img image.Image, radius float64) image.Image {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	radius = math.Min(radius, math.Min(w, h)/2)
	out := gg.NewContext(b.Dx(), b.Dy())
	out.DrawRoundedRectangle(0, 0, w, h, radius)
	out.Clip()
	out.DrawImage(img, 0, 0)
	return out.Image()
}
