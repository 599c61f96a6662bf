package textlayout_test

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/fogleman/gg"

	"github.com/youruser/cardgen/internal/card"
	"github.com/youruser/cardgen/internal/textlayout"
	"github.com/youruser/cardgen/internal/vector"
)

func text(content string, align card.Align, pos *card.Point) card.Text {
	return card.Text{Content: content, FontFamily: "Go", FontSizePx: 24, Color: "#000000", Align: align, Position: pos}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLayoutAlignmentAnchors(t *testing.T) {
	fonts := textlayout.NewFonts()
	b := textlayout.Layout(fonts, text("AB\nC", card.AlignRight, nil), 400, 200)

	if len(b.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(b.Lines))
	}
	for _, l := range b.Lines {
		if l.AnchorX != 380 {
			t.Fatalf("right anchor = %v, want 380", l.AnchorX)
		}
		if math.Abs(l.X+l.Width-380) > 1e-9 {
			t.Fatalf("line %q not flush right: x=%v w=%v", l.Text, l.X, l.Width)
		}
	}
	if b.Lines[0].Width <= b.Lines[1].Width {
		t.Fatalf("expected AB wider than C")
	}
	pitch := 24 * textlayout.LinePitch
	if y0 := (200 - 2*pitch) / 2; !approx(b.Lines[0].Y, y0) || !approx(b.Lines[1].Y, y0+pitch) {
		t.Fatalf("unexpected line tops %v %v", b.Lines[0].Y, b.Lines[1].Y)
	}

	left := textlayout.Layout(fonts, text("AB\nC", card.AlignLeft, nil), 400, 200)
	centre := textlayout.Layout(fonts, text("AB\nC", card.AlignCenter, nil), 400, 200)
	if left.Lines[1].X != textlayout.Margin || centre.Lines[0].AnchorX != 200 {
		t.Fatalf("unexpected anchors left=%v centre=%v", left.Lines[1].X, centre.Lines[0].AnchorX)
	}
}

func TestLayoutExplicitPosition(t *testing.T) {
	pos := &card.Point{X: 30, Y: 40}
	b := textlayout.Layout(textlayout.NewFonts(), text("Hi\nthere", card.AlignCenter, pos), 600, 300)

	if got := b.Lines[0].Y; !approx(got, 48) {
		t.Fatalf("first line top = %v, want 48", got)
	}
	wantAnchor := 30 + textlayout.Padding + b.MaxWidth/2
	if !approx(b.Lines[1].AnchorX, wantAnchor) {
		t.Fatalf("anchor = %v, want %v", b.Lines[1].AnchorX, wantAnchor)
	}
	if !approx(b.Box.W, b.MaxWidth+16) || !approx(b.Box.H, 2*24*textlayout.LinePitch+16) {
		t.Fatalf("unexpected box %+v", b.Box)
	}
}

func TestLayoutBlankText(t *testing.T) {
	fonts := textlayout.NewFonts()
	b := textlayout.Layout(fonts, text("  \n ", card.AlignCenter, nil), 100, 100)
	if len(b.Lines) != 0 {
		t.Fatalf("blank text produced %d lines", len(b.Lines))
	}
	dc := gg.NewContext(100, 100)
	textlayout.Draw(dc, b, fonts, card.MustColor("#000"), 1)
	if _, _, _, a := dc.Image().At(50, 50).RGBA(); a != 0 {
		t.Fatalf("blank text painted pixels")
	}
}

func TestDrawPaintsAtScale(t *testing.T) {
	fonts := textlayout.NewFonts()
	tx := text("MMMM", card.AlignCenter, nil)
	tx.FontSizePx = 40
	b := textlayout.Layout(fonts, tx, 200, 100)
	dc := gg.NewContext(400, 200)
	dc.Scale(2, 2)
	textlayout.Draw(dc, b, fonts, card.MustColor("#000"), 2)

	img := dc.Image()
	painted := false
	for x := 0; x < 400 && !painted; x++ {
		if _, _, _, a := img.At(x, 100).RGBA(); a > 0 {
			painted = true
		}
	}
	if !painted {
		t.Fatalf("no glyph pixels on the middle row")
	}
}

func TestWriteSVG(t *testing.T) {
	b := textlayout.Layout(textlayout.NewFonts(), text("a<b\nc", card.AlignRight, nil), 300, 100)
	var buf bytes.Buffer
	textlayout.WriteSVG(vector.New(&buf), b, "#ffffff")
	out := buf.String()
	if strings.Count(out, "<text") != 2 || !strings.Contains(out, `text-anchor="end"`) || !strings.Contains(out, "a&lt;b") {
		t.Fatalf("unexpected svg %s", out)
	}
	if !strings.Contains(out, `font-family="`+textlayout.EmbedFamily+`"`) || !strings.Contains(out, `font-size="2400"`) {
		t.Fatalf("text not set in the embedded family at user-unit size: %s", out)
	}
}

func TestLayoutUsesTextSize(t *testing.T) {
	fonts := textlayout.NewFonts()
	small := text("Wide line", card.AlignLeft, nil)
	large := small
	large.FontSizePx = 48
	a := textlayout.Layout(fonts, small, 600, 300)
	b := textlayout.Layout(fonts, large, 600, 300)
	if math.Abs(b.MaxWidth-2*a.MaxWidth) > 0.5 {
		t.Fatalf("width should scale with font size: %v vs %v", a.MaxWidth, b.MaxWidth)
	}
	if !approx(b.LineHeight, 48*textlayout.LinePitch) {
		t.Fatalf("line height %v", b.LineHeight)
	}
}

func TestFontFaceCSS(t *testing.T) {
	fonts := textlayout.NewFonts()
	css := fonts.FontFaceCSS("Go")
	if !strings.HasPrefix(css, "@font-face") || !strings.Contains(css, `"`+textlayout.EmbedFamily+`"`) ||
		!strings.Contains(css, "data:font/ttf;base64,") {
		t.Fatalf("unexpected rule %.120s", css)
	}
	if fonts.FontFaceCSS("Montserrat") != css {
		t.Fatalf("unknown family should embed the fallback font")
	}
	if fonts.FontFaceCSS("Go Bold") == css {
		t.Fatalf("bold should embed its own font")
	}
}

func TestFontsFallback(t *testing.T) {
	fonts := textlayout.NewFonts()
	if !fonts.Has("go bold") || fonts.Has("Montserrat") {
		t.Fatalf("unexpected registry contents %v", fonts.Families())
	}
	a := textlayout.Measure(fonts.Face("Montserrat", 30), "hello")
	b := textlayout.Measure(fonts.Face("Go", 30), "hello")
	if a != b || a == 0 {
		t.Fatalf("unknown family should fall back to Go: %v vs %v", a, b)
	}
	if n, err := fonts.LoadDir(t.TempDir()); err != nil || n != 0 {
		t.Fatalf("empty dir: n=%d err=%v", n, err)
	}
}

func TestDragSnapsToCentre(t *testing.T) {
	d := textlayout.NewDragger()
	box := textlayout.Size{W: 100, H: 50}
	canvas := textlayout.Size{W: 500, H: 300}

	start := d.Start(card.Point{X: 0, Y: 0}, nil, box, canvas)
	if start != (card.Point{X: 200, Y: 125}) {
		t.Fatalf("unset position should start centred, got %+v", start)
	}

	pos, g, ok := d.Move(card.Point{X: 7, Y: 40})
	if !ok || pos.X != 200 || pos.Y != 165 || !g.Vertical || g.Horizontal {
		t.Fatalf("unexpected move %+v %+v", pos, g)
	}
	pos, g, _ = d.Move(card.Point{X: 50, Y: -9})
	if pos.X != 250 || pos.Y != 125 || g.Vertical || !g.Horizontal {
		t.Fatalf("unexpected move %+v %+v", pos, g)
	}
	pos, _, _ = d.Move(card.Point{X: 50, Y: -10})
	if pos.Y != 115 {
		t.Fatalf("delta of exactly the threshold must not snap, got %+v", pos)
	}

	d.End()
	if _, _, ok := d.Move(card.Point{X: 1, Y: 1}); ok {
		t.Fatalf("move after End should be ignored")
	}
	if g := d.Guides(time.Now()); g.Horizontal || g.Vertical {
		t.Fatalf("guides should be hidden after End")
	}
}

func TestRecenterFlashesGuides(t *testing.T) {
	d := textlayout.NewDragger()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pos := d.Recenter(textlayout.Size{W: 20, H: 10}, textlayout.Size{W: 120, H: 60}, now)
	if pos != (card.Point{X: 50, Y: 25}) {
		t.Fatalf("unexpected centre %+v", pos)
	}
	if g := d.Guides(now.Add(799 * time.Millisecond)); !g.Horizontal || !g.Vertical {
		t.Fatalf("guides should flash")
	}
	if g := d.Guides(now.Add(textlayout.FlashDuration)); g.Horizontal || g.Vertical {
		t.Fatalf("flash should end after %v", textlayout.FlashDuration)
	}
}
