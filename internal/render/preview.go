package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/youruser/cardgen/internal/background"
	"github.com/youruser/cardgen/internal/card"
	"github.com/youruser/cardgen/internal/pattern"
	"github.com/youruser/cardgen/internal/textlayout"
	"github.com/youruser/cardgen/internal/vector"
)

// Preview renders cfg as a standalone SVG document at logical size. The text
// font is embedded so the browser draws the same glyphs as the export.
func (r *Renderer) Preview(ctx context.Context, cfg card.CardConfig) (string, error) {
	w, h := float64(cfg.Dimensions.Width), float64(cfg.Dimensions.Height)

	var img *background.PreviewImage
	if cfg.Background.Mode == card.BackgroundImage && cfg.Background.ImageRef != "" {
		var err error
		if img, err = r.previewImage(ctx, cfg.Background.ImageRef); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			r.Logger.Warn().Err(err).Msg("preview background unavailable, using fallback fill")
		}
	}
	block := r.Layout(cfg)

	var buf bytes.Buffer
	doc := vector.New(&buf)
	doc.Begin(cfg.Dimensions.Width, cfg.Dimensions.Height)
	rx := vector.U(math.Min(cfg.BorderRadiusPx, math.Min(w, h)/2))
	doc.Def()
	if len(block.Lines) > 0 {
		doc.Style("text/css", r.Fonts.FontFaceCSS(cfg.Text.FontFamily))
	}
	doc.ClipPath(`id="card-clip"`)
	doc.Roundrect(0, 0, vector.U(w), vector.U(h), rx, rx)
	doc.ClipEnd()
	doc.DefEnd()

	doc.Group(`clip-path="url(#card-clip)"`)
	background.WriteSVG(doc, cfg.Background, w, h, img)
	doc.Group(`class="pattern"`)
	pattern.WriteSVG(doc, r.Shapes(cfg, 1))
	doc.Gend()
	doc.Group(`class="text"`)
	textlayout.WriteSVG(doc, block, cfg.Text.Color)
	doc.Gend()
	doc.Gend()
	doc.End()
	return buf.String(), nil
}

// previewImage resolves ref for embedding. Uploaded assets are inlined as
// data URIs so the document stands alone.
func (r *Renderer) previewImage(ctx context.Context, ref string) (*background.PreviewImage, error) {
	if r.Loader == nil {
		return nil, fmt.Errorf("no image loader configured")
	}
	decoded, err := r.Loader.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	href := ref
	if r.Loader.Assets != nil {
		if a, ok := r.Loader.Assets.Get(ref); ok {
			href = "data:" + http.DetectContentType(a.Data) + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
		}
	}
	if !strings.HasPrefix(href, "data:") && !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		href = "file://" + href
	}
	b := decoded.Bounds()
	return &background.PreviewImage{Href: href, Width: b.Dx(), Height: b.Dy()}, nil
}
