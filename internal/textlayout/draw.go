package textlayout

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/youruser/cardgen/internal/card"
	"github.com/youruser/cardgen/internal/vector"
)

// Draw paints b onto dc. Glyphs are rasterised under an identity matrix with
// a face of FontSizePx*scale, so a scaled export gets crisp outlines instead
// of an upsampled bitmap.
func Draw(dc *gg.Context, b Block, fonts *Fonts, col color.Color, scale float64) {
	if len(b.Lines) == 0 {
		return
	}
	face := fonts.Face(b.FontFamily, b.FontSizePx*scale)
	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetFontFace(face)
	dc.SetColor(col)
	ascent := float64(face.Metrics().Ascent) / 64
	ax := anchorFraction(b.Align)
	for _, l := range b.Lines {
		dc.DrawStringAnchored(l.Text, l.AnchorX*scale, l.Y*scale+ascent, ax, 0)
	}
}

// WriteSVG writes one <text> element per line in EmbedFamily; the document
// must carry the matching FontFaceCSS rule.
func WriteSVG(doc *vector.Doc, b Block, fill string) {
	style := fmt.Sprintf(`font-family="%s" font-size="%d" fill="%s" text-anchor="%s" xml:space="preserve"`,
		EmbedFamily, vector.U(b.FontSizePx), fill, textAnchor(b.Align))
	for _, l := range b.Lines {
		doc.Text(vector.U(l.AnchorX), vector.U(l.Y+b.Ascent), l.Text, style)
	}
}

func textAnchor(a card.Align) string {
	switch a {
	case card.AlignLeft:
		return "start"
	case card.AlignRight:
		return "end"
	}
	return "middle"
}
