// Package textlayout positions card text. The same Block drives the SVG
// preview and the raster export so both place every line identically.
package textlayout

import (
	"math"
	"strings"

	"golang.org/x/image/font"

	"github.com/youruser/cardgen/internal/card"
)

const (
	// LinePitch is the line height as a multiple of the font size.
	LinePitch = 1.2
	// Padding surrounds the text container in the preview.
	Padding = 8.0
	// Margin is the distance from the card edge for auto left/right layout.
	Margin = 20.0
)

type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Line is one laid out line. AnchorX is the alignment anchor (left edge,
// centre or right edge); X is where the glyphs start. Y is the top of the line.
type Line struct {
	Text    string  `json:"text"`
	Width   float64 `json:"width"`
	AnchorX float64 `json:"anchor_x"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type Block struct {
	Lines      []Line     `json:"lines"`
	Align      card.Align `json:"align"`
	FontFamily string     `json:"font_family"`
	FontSizePx float64    `json:"font_size_px"`
	LineHeight float64    `json:"line_height"`
	Ascent     float64    `json:"ascent"`
	MaxWidth   float64    `json:"max_width"`
	// Box is the padded container the preview drags around.
	Box Size `json:"box"`
}

// SplitLines splits on line breaks, accepting \r\n.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Measure returns the advance width of s in pixels.
func Measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// Layout computes line origins for text on a canvasW×canvasH card, measuring
// with t's own family and size. t.Position, when set, is the top-left of the
// padded container; otherwise the block is centred vertically and anchored by
// align.
func Layout(fonts *Fonts, t card.Text, canvasW, canvasH float64) Block {
	face := fonts.Face(t.FontFamily, t.FontSizePx)
	pitch := t.FontSizePx * LinePitch
	b := Block{
		Align:      t.Align,
		FontFamily: t.FontFamily,
		FontSizePx: t.FontSizePx,
		LineHeight: pitch,
		Ascent:     float64(face.Metrics().Ascent) / 64,
		Box:        Size{W: 2 * Padding, H: 2 * Padding},
	}
	if strings.TrimSpace(t.Content) == "" {
		return b
	}

	texts := SplitLines(t.Content)
	widths := make([]float64, len(texts))
	for i, s := range texts {
		widths[i] = Measure(face, s)
		b.MaxWidth = math.Max(b.MaxWidth, widths[i])
	}
	b.Box = Size{W: b.MaxWidth + 2*Padding, H: float64(len(texts))*pitch + 2*Padding}

	var anchor, top float64
	if p := t.Position; p != nil {
		top = p.Y + Padding
		switch t.Align {
		case card.AlignLeft:
			anchor = p.X + Padding
		case card.AlignRight:
			anchor = p.X + b.MaxWidth + Padding
		default:
			anchor = p.X + Padding + b.MaxWidth/2
		}
	} else {
		top = (canvasH - float64(len(texts))*pitch) / 2
		switch t.Align {
		case card.AlignLeft:
			anchor = Margin
		case card.AlignRight:
			anchor = canvasW - Margin
		default:
			anchor = canvasW / 2
		}
	}

	b.Lines = make([]Line, len(texts))
	for i, s := range texts {
		b.Lines[i] = Line{
			Text:    s,
			Width:   widths[i],
			AnchorX: anchor,
			X:       anchor - widths[i]*anchorFraction(t.Align),
			Y:       top + float64(i)*pitch,
		}
	}
	return b
}

// anchorFraction is the share of a line's width that sits left of its anchor.
func anchorFraction(a card.Align) float64 {
	switch a {
	case card.AlignLeft:
		return 0
	case card.AlignRight:
		return 1
	}
	return 0.5
}

// Centered returns the container position that centres box on the canvas.
func Centered(box, canvas Size) card.Point {
	return card.Point{X: (canvas.W - box.W) / 2, Y: (canvas.H - box.H) / 2}
}
