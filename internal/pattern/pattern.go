// Package pattern generates the decorative shape overlay of a card and draws
// it onto either an SVG document or a gg raster context.
package pattern

import (
	"math"

	"github.com/youruser/cardgen/internal/card"
)

type ShapeKind string

const (
	KindBlob     ShapeKind = "blob"
	KindTriangle ShapeKind = "triangle"
	KindCircle   ShapeKind = "circle"
	KindLine     ShapeKind = "line"
)

const (
	CircleStrokeWidth = 2.0
	LineStrokeWidth   = 3.0
)

// Shape is one generated pattern element in logical card units. Which fields
// are meaningful depends on Kind:
//
//	blob, circle: CX, CY, R
//	triangle:     X, Y, Size, Angle (degrees)
//	line:         X1, Y1, X2, Y2
type Shape struct {
	Kind    ShapeKind `json:"kind"`
	CX      float64   `json:"cx,omitempty"`
	CY      float64   `json:"cy,omitempty"`
	R       float64   `json:"r,omitempty"`
	X       float64   `json:"x,omitempty"`
	Y       float64   `json:"y,omitempty"`
	Size    float64   `json:"size,omitempty"`
	Angle   float64   `json:"angle,omitempty"`
	X1      float64   `json:"x1,omitempty"`
	Y1      float64   `json:"y1,omitempty"`
	X2      float64   `json:"x2,omitempty"`
	Y2      float64   `json:"y2,omitempty"`
	Opacity float64   `json:"opacity"`
	Color   string    `json:"color"`
}

// FromConfig generates the pattern described by cfg using count shapes.
func FromConfig(cfg card.CardConfig, count int) []Shape {
	p := cfg.Pattern
	return Generate(p.Kind, float64(cfg.Dimensions.Width), float64(cfg.Dimensions.Height), p.Color, p.Opacity, count)
}

// Generate returns count shapes of the given kind. The PRNG is reseeded on
// every call, so identical arguments give identical sequences, and a larger
// count extends the sequence without changing its prefix.
func Generate(kind card.PatternKind, width, height float64, color string, opacity float64, count int) []Shape {
	if kind == card.PatternNone || count <= 0 {
		return nil
	}
	opacity = math.Max(0, math.Min(1, opacity))
	rnd := NewPRNG()
	shapes := make([]Shape, 0, count)
	for i := 0; i < count; i++ {
		var s Shape
		switch kind {
		case card.PatternBlobs:
			r := rnd.Next()*50 + 20
			s = Shape{Kind: KindBlob, R: r, CX: rnd.Next() * width, CY: rnd.Next() * height}
		case card.PatternTriangles:
			size := rnd.Next()*80 + 20
			x := rnd.Next() * width
			y := rnd.Next() * height
			s = Shape{Kind: KindTriangle, Size: size, X: x, Y: y, Angle: rnd.Next() * 360}
		case card.PatternCircles:
			r := rnd.Next()*30 + 5
			s = Shape{Kind: KindCircle, R: r, CX: rnd.Next() * width, CY: rnd.Next() * height}
		case card.PatternLines:
			x1 := rnd.Next() * width
			y1 := rnd.Next() * height
			x2 := x1 + (rnd.Next()-0.5)*200
			y2 := y1 + (rnd.Next()-0.5)*200
			s = Shape{Kind: KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2}
		default:
			panic("pattern: unknown kind " + string(kind))
		}
		s.Opacity = opacity * (rnd.Next()*0.5 + 0.5)
		s.Color = color
		shapes = append(shapes, s)
	}
	return shapes
}

// ExportCount is the density compensation applied to high-resolution exports:
// max(count, floor(count*sqrt(scale))). The sqrt curve is an empirically tuned
// constant.
func ExportCount(count, scale int) int {
	if scale < 1 {
		scale = 1
	}
	boosted := int(math.Floor(float64(count) * math.Sqrt(float64(scale))))
	if boosted > count {
		return boosted
	}
	return count
}

// TrianglePoints returns the apex and base corners before rotation.
func TrianglePoints(s Shape) [3][2]float64 {
	h := s.Size / 2
	return [3][2]float64{
		{s.X, s.Y - h},
		{s.X - h, s.Y + h},
		{s.X + h, s.Y + h},
	}
}
