package pattern

import (
	"fmt"

	"github.com/youruser/cardgen/internal/vector"
)

// WriteSVG writes shapes to doc, one element per shape, for the live preview.
func WriteSVG(doc *vector.Doc, shapes []Shape) {
	for _, s := range shapes {
		op := fmt.Sprintf(`opacity="%s"`, vector.Num(s.Opacity))
		switch s.Kind {
		case KindBlob:
			doc.Circle(vector.U(s.CX), vector.U(s.CY), vector.U(s.R), fmt.Sprintf(`fill="%s"`, s.Color), op)
		case KindTriangle:
			p := TrianglePoints(s)
			doc.Polygon(
				vector.Us(p[0][0], p[1][0], p[2][0]),
				vector.Us(p[0][1], p[1][1], p[2][1]),
				fmt.Sprintf(`transform="rotate(%s %d %d)"`, vector.Num(s.Angle), vector.U(s.X), vector.U(s.Y)),
				fmt.Sprintf(`fill="%s"`, s.Color), op)
		case KindCircle:
			doc.Circle(vector.U(s.CX), vector.U(s.CY), vector.U(s.R),
				fmt.Sprintf(`stroke="%s" stroke-width="%d" fill="none"`, s.Color, vector.U(CircleStrokeWidth)), op)
		case KindLine:
			doc.Line(vector.U(s.X1), vector.U(s.Y1), vector.U(s.X2), vector.U(s.Y2),
				fmt.Sprintf(`stroke="%s" stroke-width="%d"`, s.Color, vector.U(LineStrokeWidth)), op)
		}
	}
}
