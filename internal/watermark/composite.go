package watermark

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/textlayout"
)

const (
	// PreviewMax caps the longer axis of the interactive preview.
	PreviewMax     = 400
	PlaceholderW   = 400
	PlaceholderH   = 300
	placeholderBg  = "#f8fafc"
	placeholderRim = "#e2e8f0"
)

// PreviewSize fits w×h into PreviewMax on the longer axis, never upscaling.
func PreviewSize(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	aspect := float64(w) / float64(h)
	if aspect > 1 {
		cw := math.Min(PreviewMax, float64(w))
		return int(cw), max(1, int(cw/aspect))
	}
	ch := math.Min(PreviewMax, float64(h))
	return max(1, int(ch*aspect)), int(ch)
}

// Composite draws base resized to w×h and overlays mark according to p.
// markScale multiplies p.Scale; it is 1 at native resolution and the
// preview ratio on a preview canvas. mark may be nil.
func Composite(base, mark image.Image, p Placement, w, h int, markScale float64) *image.NRGBA {
	var canvas *image.NRGBA
	if b := base.Bounds(); b.Dx() == w && b.Dy() == h {
		canvas = imaging.Clone(base)
	} else {
		canvas = imaging.Resize(base, w, h, imaging.Lanczos)
	}
	if mark == nil {
		return canvas
	}

	mb := mark.Bounds()
	mw := int(math.Round(float64(mb.Dx()) * p.Scale * markScale))
	mh := int(math.Round(float64(mb.Dy()) * p.Scale * markScale))
	if mw < 1 || mh < 1 {
		return canvas
	}
	scaled := imaging.Resize(mark, mw, mh, imaging.Lanczos)
	// imaging rotates counter-clockwise; the placement angle is clockwise
	// on screen.
	placed := scaled
	if p.RotationDegrees != 0 {
		placed = imaging.Rotate(scaled, -p.RotationDegrees, color.NRGBA{})
	}

	cx := float64(w) * p.XPercent / 100
	cy := float64(h) * p.YPercent / 100
	pb := placed.Bounds()
	at := image.Pt(
		int(math.Round(cx-float64(pb.Dx())/2)),
		int(math.Round(cy-float64(pb.Dy())/2)),
	)
	imagepkg.DrawBlended(canvas, placed, at, p.Opacity, p.BlendMode)
	return canvas
}

// Render composites base image i at its native resolution.
func (j *Job) Render(i int) (*image.NRGBA, error) {
	if i < 0 || i >= len(j.Images) {
		return nil, ErrIndex
	}
	base := j.Images[i]
	return Composite(base.Image, markImage(j.Mark), j.Placement, base.Width, base.Height, 1), nil
}

// Preview composites the current image at preview size, or returns the
// placeholder when there is nothing to show.
func (j *Job) Preview(fonts *textlayout.Fonts) *image.NRGBA {
	cur := j.CurrentImage()
	if cur == nil {
		return Placeholder(fonts)
	}
	w, h := PreviewSize(cur.Width, cur.Height)
	return Composite(cur.Image, markImage(j.Mark), j.Placement, w, h, float64(w)/float64(cur.Width))
}

func markImage(a *imagepkg.Asset) image.Image {
	if a == nil {
		return nil
	}
	return a.Image
}

// Placeholder is the empty state shown before any base image is uploaded.
func Placeholder(fonts *textlayout.Fonts) *image.NRGBA {
	dc := gg.NewContext(PlaceholderW, PlaceholderH)
	dc.SetHexColor(placeholderBg)
	dc.Clear()
	dc.SetHexColor(placeholderRim)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, PlaceholderW-2, PlaceholderH-2)
	dc.Stroke()

	cx, cy := PlaceholderW/2.0, PlaceholderH/2.0
	// folder icon
	dc.SetHexColor("#94a3b8")
	dc.DrawRoundedRectangle(cx-24, cy-72, 20, 10, 3)
	dc.Fill()
	dc.DrawRoundedRectangle(cx-24, cy-66, 48, 34, 4)
	dc.Fill()

	lines := []struct {
		text, family, color string
		size, dy            float64
	}{
		{"Upload Images to Get Started", "Go Bold", "#475569", 18, 10},
		{"Select multiple images using the upload button above", textlayout.DefaultFamily, "#64748b", 14, 35},
		{"Then upload a watermark image to overlay", textlayout.DefaultFamily, "#64748b", 14, 55},
	}
	for _, l := range lines {
		dc.SetFontFace(fonts.Face(l.family, l.size))
		dc.SetHexColor(l.color)
		dc.DrawStringAnchored(l.text, cx, cy+l.dy, 0.5, 0)
	}
	return imaging.Clone(dc.Image())
}
