package pattern_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/fogleman/gg"

	"github.com/youruser/cardgen/internal/card"
	"github.com/youruser/cardgen/internal/pattern"
	"github.com/youruser/cardgen/internal/vector"
)

func TestGenerateIsDeterministic(t *testing.T) {
	kinds := []card.PatternKind{card.PatternBlobs, card.PatternTriangles, card.PatternCircles, card.PatternLines}
	for _, k := range kinds {
		a := pattern.Generate(k, 1200, 630, "#ffffff", 0.2, 20)
		b := pattern.Generate(k, 1200, 630, "#ffffff", 0.2, 20)
		if len(a) != 20 {
			t.Fatalf("%s: expected 20 shapes, got %d", k, len(a))
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: two calls produced different shapes", k)
		}
	}
}

func TestLargerCountExtendsSequence(t *testing.T) {
	short := pattern.Generate(card.PatternTriangles, 400, 200, "#000", 1, 20)
	long := pattern.Generate(card.PatternTriangles, 400, 200, "#000", 1, 40)
	if !reflect.DeepEqual(short, long[:20]) {
		t.Fatalf("boosted export changed the preview shapes")
	}
}

func TestGenerateRanges(t *testing.T) {
	const w, h = 300.0, 150.0
	for _, s := range pattern.Generate(card.PatternBlobs, w, h, "#fff", 0.8, 50) {
		if s.R < 20 || s.R >= 70 || s.CX < 0 || s.CX >= w || s.CY < 0 || s.CY >= h {
			t.Fatalf("blob out of range: %+v", s)
		}
		if s.Opacity < 0.4 || s.Opacity > 0.8 {
			t.Fatalf("blob opacity %v outside 50-100%% of 0.8", s.Opacity)
		}
	}
	for _, s := range pattern.Generate(card.PatternCircles, w, h, "#fff", 1, 50) {
		if s.R < 5 || s.R >= 35 {
			t.Fatalf("circle radius out of range: %v", s.R)
		}
	}
	for _, s := range pattern.Generate(card.PatternLines, w, h, "#fff", 1, 50) {
		if dx := s.X2 - s.X1; dx < -100 || dx >= 100 {
			t.Fatalf("line dx out of range: %v", dx)
		}
	}
	for _, s := range pattern.Generate(card.PatternTriangles, w, h, "#fff", 1, 50) {
		if s.Size < 20 || s.Size >= 100 || s.Angle < 0 || s.Angle >= 360 {
			t.Fatalf("triangle out of range: %+v", s)
		}
	}
}

func TestGenerateClampsAndNone(t *testing.T) {
	if got := pattern.Generate(card.PatternNone, 100, 100, "#fff", 1, 10); len(got) != 0 {
		t.Fatalf("none should be empty, got %d shapes", len(got))
	}
	if got := pattern.Generate(card.PatternBlobs, 100, 100, "#fff", 1, -3); len(got) != 0 {
		t.Fatalf("negative count should be empty, got %d shapes", len(got))
	}
	for _, s := range pattern.Generate(card.PatternBlobs, 100, 100, "#fff", 3, 10) {
		if s.Opacity > 1 {
			t.Fatalf("opacity not clamped: %v", s.Opacity)
		}
	}
}

func TestExportCount(t *testing.T) {
	tests := []struct{ count, scale, want int }{
		{20, 1, 20},
		{20, 4, 40},
		{20, 2, 28},
		{0, 4, 0},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := pattern.ExportCount(tt.count, tt.scale); got != tt.want {
			t.Errorf("ExportCount(%d, %d) = %d, want %d", tt.count, tt.scale, got, tt.want)
		}
	}
}

func TestPRNGRange(t *testing.T) {
	r := pattern.NewPRNG()
	for i := 0; i < 1000; i++ {
		v := r.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("value %v outside [0,1)", v)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	shapes := pattern.Generate(card.PatternTriangles, 200, 100, "#ff0000", 0.5, 3)
	pattern.WriteSVG(vector.New(&buf), shapes)
	out := buf.String()
	if n := strings.Count(out, "<polygon"); n != 3 {
		t.Fatalf("expected 3 polygons, got %d in %s", n, out)
	}
	if !strings.Contains(out, `fill="#ff0000"`) || !strings.Contains(out, "rotate(") {
		t.Errorf("unexpected svg: %s", out)
	}
}

func TestDrawScalesWithContext(t *testing.T) {
	shapes := []pattern.Shape{{Kind: pattern.KindBlob, CX: 10, CY: 10, R: 5, Opacity: 1, Color: "#ff0000"}}
	for _, scale := range []float64{1, 3} {
		dc := gg.NewContext(int(20*scale), int(20*scale))
		dc.Scale(scale, scale)
		pattern.Draw(dc, shapes, scale)
		r, _, _, a := dc.Image().At(int(10*scale), int(10*scale)).RGBA()
		if a == 0 || r == 0 {
			t.Fatalf("scale %v: blob centre not painted", scale)
		}
		if _, _, _, a := dc.Image().At(0, 0).RGBA(); a != 0 {
			t.Fatalf("scale %v: corner should stay transparent", scale)
		}
	}
}
