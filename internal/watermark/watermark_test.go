package watermark_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/textlayout"
	"github.com/youruser/cardgen/internal/watermark"
)

func asset(t *testing.T, name string, w, h int, c color.NRGBA) *imagepkg.Asset {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.New(w, h, c)); err != nil {
		t.Fatal(err)
	}
	a, err := imagepkg.Decode(name, buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestRemoveClampsCurrent(t *testing.T) {
	j := watermark.NewJob()
	grey := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	j.Add(asset(t, "a.png", 4, 4, grey), asset(t, "b.png", 4, 4, grey), asset(t, "c.png", 4, 4, grey))
	if err := j.Select(2); err != nil {
		t.Fatal(err)
	}
	if !j.Remove(2) || j.Current != 1 {
		t.Fatalf("expected current 1 after removing the last image, got %d", j.Current)
	}
	j.Remove(0)
	j.Remove(0)
	if j.Current != 0 || j.CurrentImage() != nil {
		t.Fatalf("empty job should have current 0 and no image")
	}
	if j.Remove(0) || j.Current != 0 {
		t.Fatalf("remove on empty job should be a no-op")
	}
	if err := j.Select(0); !errors.Is(err, watermark.ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}

func TestMarkAndPresets(t *testing.T) {
	j := watermark.NewJob()
	if err := j.ApplyPreset("bottom-right"); err != nil {
		t.Fatal(err)
	}
	if j.Placement.XPercent != 85 || j.Placement.YPercent != 85 {
		t.Fatalf("unexpected preset placement %+v", j.Placement)
	}
	j.SetMark(asset(t, "logo.png", 2, 2, color.NRGBA{A: 255}))
	if j.Placement.XPercent != 50 || j.Placement.YPercent != 50 {
		t.Fatalf("new mark should reset to centre, got %+v", j.Placement)
	}
	if err := j.ApplyPreset("middle"); !errors.Is(err, watermark.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if len(watermark.Presets()) != 9 {
		t.Fatalf("expected 9 presets")
	}

	p := watermark.DefaultPlacement()
	p.Opacity = 3
	p.BlendMode = "Multiply"
	if err := j.SetPlacement(p); err != nil {
		t.Fatal(err)
	}
	if j.Placement.Opacity != 1 || j.Placement.BlendMode != imagepkg.BlendMultiply {
		t.Fatalf("unexpected placement %+v", j.Placement)
	}
	p.Scale = 0
	if err := j.SetPlacement(p); !errors.Is(err, watermark.ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
}

func TestPreviewSize(t *testing.T) {
	tests := []struct{ w, h, wantW, wantH int }{
		{1600, 800, 400, 200},
		{300, 100, 300, 100},
		{800, 1600, 200, 400},
		{500, 500, 400, 400},
	}
	for _, tt := range tests {
		if w, h := watermark.PreviewSize(tt.w, tt.h); w != tt.wantW || h != tt.wantH {
			t.Errorf("PreviewSize(%d, %d) = %d, %d", tt.w, tt.h, w, h)
		}
	}
}

func TestCompositePlacesMarkCentre(t *testing.T) {
	base := imaging.New(100, 50, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	mark := imaging.New(40, 20, color.NRGBA{A: 255})
	p := watermark.DefaultPlacement()
	p.Opacity = 1
	p.Scale = 0.5
	p.XPercent, p.YPercent = 25, 50

	out := watermark.Composite(base, mark, p, 100, 50, 1)
	// mark is 20×10 centred on (25, 25)
	if got := out.NRGBAAt(25, 25); got != (color.NRGBA{A: 255}) {
		t.Fatalf("centre not covered: %+v", got)
	}
	if got := out.NRGBAAt(36, 25); got.R != 255 {
		t.Fatalf("mark wider than expected: %+v", got)
	}
	if base.NRGBAAt(25, 25).R != 255 {
		t.Fatalf("base image was modified")
	}

	p.RotationDegrees = 90
	out = watermark.Composite(base, mark, p, 100, 50, 1)
	if got := out.NRGBAAt(25, 33); got.R != 0 {
		t.Fatalf("rotated mark should extend vertically: %+v", got)
	}
	if got := out.NRGBAAt(33, 25); got.R != 255 {
		t.Fatalf("rotated mark should be narrow: %+v", got)
	}
}

func TestPreviewPlaceholderAndScale(t *testing.T) {
	fonts := textlayout.NewFonts()
	j := watermark.NewJob()
	ph := j.Preview(fonts)
	if ph.Bounds() != image.Rect(0, 0, 400, 300) {
		t.Fatalf("placeholder size %v", ph.Bounds())
	}
	if got := ph.NRGBAAt(10, 10); got != (color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}) {
		t.Fatalf("placeholder background %+v", got)
	}

	j.Add(asset(t, "big.png", 800, 400, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	j.SetMark(asset(t, "mark.png", 200, 200, color.NRGBA{A: 255}))
	p := j.Placement
	p.Opacity, p.Scale = 1, 0.5
	if err := j.SetPlacement(p); err != nil {
		t.Fatal(err)
	}
	prev := j.Preview(fonts)
	if prev.Bounds().Dx() != 400 || prev.Bounds().Dy() != 200 {
		t.Fatalf("preview size %v", prev.Bounds())
	}
	// native mark 100×100 on 800×400 becomes 50×50 on the half-size preview
	if prev.NRGBAAt(200, 100).R != 0 || prev.NRGBAAt(200, 130).R != 255 {
		t.Fatalf("mark not scaled with the preview")
	}
}

func TestBatch(t *testing.T) {
	j := watermark.NewJob()
	if err := watermark.Batch(context.Background(), j.Snapshot(), 0, nil); !errors.Is(err, watermark.ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	j.Add(asset(t, "one.png", 30, 20, white), asset(t, "two.jpg", 10, 10, white), asset(t, "three", 5, 5, white))
	j.SetMark(asset(t, "m.png", 4, 4, color.NRGBA{A: 255}))

	var got []watermark.Output
	start := time.Now()
	err := watermark.Batch(context.Background(), j.Snapshot(), 5*time.Millisecond, func(o watermark.Output) error {
		got = append(got, o)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("batch was not staggered")
	}
	want := []struct{ name, mime string }{
		{"one_watermarked.png", "image/png"},
		{"two_watermarked.jpg", "image/jpeg"},
		{"three_watermarked.png", "image/png"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d outputs, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].MIME != w.mime {
			t.Errorf("output %d = %s %s, want %s %s", i, got[i].Name, got[i].MIME, w.name, w.mime)
		}
	}
	img, err := imaging.Decode(bytes.NewReader(got[0].Data))
	if err != nil || img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
		t.Fatalf("batch output should keep native size: %v %v", img.Bounds(), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	err = watermark.Batch(ctx, j.Snapshot(), time.Hour, func(watermark.Output) error {
		n++
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) || n != 1 {
		t.Fatalf("expected cancellation after first item, n=%d err=%v", n, err)
	}
}

func TestBatchDuplicateNames(t *testing.T) {
	j := watermark.NewJob()
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	j.Add(asset(t, "a.png", 4, 4, white), asset(t, "a.png", 4, 4, white), asset(t, "b.png", 4, 4, white), asset(t, "a.png", 4, 4, white))
	j.SetMark(asset(t, "m.png", 2, 2, color.NRGBA{A: 255}))

	var names []string
	err := watermark.Batch(context.Background(), j.Snapshot(), 0, func(o watermark.Output) error {
		names = append(names, o.Name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a_watermarked.png", "a_watermarked_1.png", "b_watermarked.png", "a_watermarked_3.png"}
	for i := range want {
		if i >= len(names) || names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}
