package background

import (
	"fmt"
	"html"

	svg "github.com/ajstarks/svgo"

	"github.com/youruser/cardgen/internal/card"
	"github.com/youruser/cardgen/internal/vector"
)

// PreviewImage describes a decoded background image for the SVG preview.
type PreviewImage struct {
	Href   string
	Width  int
	Height int
}

// WriteSVG writes the background of a w×h card to doc. For image mode, img
// nil means the image could not be decoded and the fallback fill is drawn.
func WriteSVG(doc *vector.Doc, bg card.Background, width, height float64, img *PreviewImage) {
	w, h := vector.U(width), vector.U(height)
	switch bg.Mode {
	case card.BackgroundColor:
		doc.Rect(0, 0, w, h, fmt.Sprintf(`fill="%s"`, bg.Color))
	case card.BackgroundGradient:
		n := len(bg.GradientStops)
		if n < card.MinGradientStops {
			return
		}
		// bounding-box percentages of a full-card rect match the raster axis
		x1, y1, x2, y2 := GradientLine(bg.GradientAngle, width, height)
		stops := make([]svg.Offcolor, n)
		for i, c := range bg.GradientStops {
			stops[i] = svg.Offcolor{Offset: vector.Percent(StopOffset(i, n)), Color: c, Opacity: 1}
		}
		doc.Def()
		doc.LinearGradient("bg-gradient",
			vector.Percent(x1/width), vector.Percent(y1/height),
			vector.Percent(x2/width), vector.Percent(y2/height), stops)
		doc.DefEnd()
		doc.Rect(0, 0, w, h, `fill="url(#bg-gradient)"`)
	case card.BackgroundImage:
		if bg.ImageRef == "" {
			return
		}
		if img == nil {
			doc.Rect(0, 0, w, h, fmt.Sprintf(`fill="%s"`, FallbackColor))
			return
		}
		r := Fit(bg.ImageFit, float64(img.Width), float64(img.Height), width, height)
		x, y, rw, rh := vector.U(r.X), vector.U(r.Y), vector.U(r.W), vector.U(r.H)
		attrs := []string{`preserveAspectRatio="none"`}
		if bg.ImageBlurPx > 0 {
			doc.Def()
			doc.Filter("bg-blur")
			doc.FeGaussianBlur(svg.Filterspec{}, float64(vector.U(bg.ImageBlurPx)), float64(vector.U(bg.ImageBlurPx)))
			doc.Fend()
			doc.DefEnd()
			attrs = append(attrs, `filter="url(#bg-blur)"`)
		}
		doc.Image(x, y, rw, rh, html.EscapeString(img.Href), attrs...)
		if bg.ImageOpacity < 1 {
			doc.Rect(x, y, rw, rh, fmt.Sprintf(`fill="#ffffff" fill-opacity="%s"`, vector.Num(1-bg.ImageOpacity)))
		}
	}
}
