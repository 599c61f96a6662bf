package pattern

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/youruser/cardgen/internal/card"
)

// Draw paints shapes onto dc. The context's matrix is expected to already be
// scaled by scale so coordinates stay logical; gg does not apply the matrix
// to line widths, so strokes are widened here instead.
func Draw(dc *gg.Context, shapes []Shape, scale float64) {
	dc.Push()
	defer dc.Pop()
	for _, s := range shapes {
		dc.SetColor(withOpacity(card.MustColor(s.Color), s.Opacity))
		switch s.Kind {
		case KindBlob:
			dc.DrawCircle(s.CX, s.CY, s.R)
			dc.Fill()
		case KindTriangle:
			p := TrianglePoints(s)
			dc.Push()
			dc.RotateAbout(gg.Radians(s.Angle), s.X, s.Y)
			dc.MoveTo(p[0][0], p[0][1])
			dc.LineTo(p[1][0], p[1][1])
			dc.LineTo(p[2][0], p[2][1])
			dc.ClosePath()
			dc.Fill()
			dc.Pop()
		case KindCircle:
			dc.SetLineWidth(CircleStrokeWidth * scale)
			dc.DrawCircle(s.CX, s.CY, s.R)
			dc.Stroke()
		case KindLine:
			dc.SetLineWidth(LineStrokeWidth * scale)
			dc.DrawLine(s.X1, s.Y1, s.X2, s.Y2)
			dc.Stroke()
		}
	}
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}
