// Package watermark overlays a mark image onto a collection of base photos.
package watermark

import (
	"errors"
	"fmt"
	"math"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

var (
	ErrNothingToExport  = errors.New("watermark: upload images and a watermark first")
	ErrIndex            = errors.New("watermark: image index out of range")
	ErrUnknownPreset    = errors.New("watermark: unknown position preset")
	ErrInvalidPlacement = errors.New("watermark: invalid placement")
)

// Placement positions the mark relative to the base image. X and Y are
// percentages of the base size locating the mark's centre.
type Placement struct {
	XPercent        float64            `json:"x_percent"`
	YPercent        float64            `json:"y_percent"`
	Opacity         float64            `json:"opacity"`
	Scale           float64            `json:"scale"`
	RotationDegrees float64            `json:"rotation_degrees"`
	BlendMode       imagepkg.BlendMode `json:"blend_mode"`
}

func DefaultPlacement() Placement {
	return Placement{XPercent: 50, YPercent: 50, Opacity: 0.7, Scale: 0.3, BlendMode: imagepkg.BlendNormal}
}

var presets = map[string][2]float64{
	"top-left":      {15, 15},
	"top-center":    {50, 15},
	"top-right":     {85, 15},
	"center-left":   {15, 50},
	"center":        {50, 50},
	"center-right":  {85, 50},
	"bottom-left":   {15, 85},
	"bottom-center": {50, 85},
	"bottom-right":  {85, 85},
}

// Presets lists the named positions accepted by ApplyPreset.
func Presets() []string {
	return []string{
		"top-left", "top-center", "top-right",
		"center-left", "center", "center-right",
		"bottom-left", "bottom-center", "bottom-right",
	}
}

// Job is the watermark workspace: base images in upload order, the optional
// mark and its placement. Current is always a valid index, or 0 when there
// are no images. Job is not safe for concurrent use.
type Job struct {
	Images    []*imagepkg.Asset `json:"images"`
	Mark      *imagepkg.Asset   `json:"mark,omitempty"`
	Placement Placement         `json:"placement"`
	Current   int               `json:"current"`
}

func NewJob() *Job {
	return &Job{Placement: DefaultPlacement()}
}

// Add appends base images.
func (j *Job) Add(assets ...*imagepkg.Asset) {
	j.Images = append(j.Images, assets...)
}

// Remove drops the image at i and re-clamps Current. Out of range indexes
// are ignored.
func (j *Job) Remove(i int) bool {
	if i < 0 || i >= len(j.Images) {
		return false
	}
	j.Images = append(j.Images[:i:i], j.Images[i+1:]...)
	if j.Current >= len(j.Images) {
		j.Current = max(0, len(j.Images)-1)
	}
	return true
}

func (j *Job) Select(i int) error {
	if i < 0 || i >= len(j.Images) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	j.Current = i
	return nil
}

// CurrentImage returns the selected base image, or nil when empty.
func (j *Job) CurrentImage() *imagepkg.Asset {
	if len(j.Images) == 0 {
		return nil
	}
	return j.Images[j.Current]
}

// SetMark installs a new mark and moves it back to the centre.
func (j *Job) SetMark(a *imagepkg.Asset) {
	j.Mark = a
	j.Placement.XPercent = 50
	j.Placement.YPercent = 50
}

func (j *Job) ClearMark() { j.Mark = nil }

// SetPlacement validates the blend mode and scale and clamps opacity.
func (j *Job) SetPlacement(p Placement) error {
	mode, err := imagepkg.ParseBlendMode(string(p.BlendMode))
	if err != nil {
		return err
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: scale must be positive", ErrInvalidPlacement)
	}
	p.BlendMode = mode
	p.Opacity = math.Max(0, math.Min(1, p.Opacity))
	j.Placement = p
	return nil
}

func (j *Job) ApplyPreset(name string) error {
	xy, ok := presets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	j.Placement.XPercent, j.Placement.YPercent = xy[0], xy[1]
	return nil
}

// Snapshot copies the job so it can be rendered without holding the owner's
// lock. Assets are immutable and shared.
func (j *Job) Snapshot() Job {
	cp := *j
	cp.Images = append([]*imagepkg.Asset(nil), j.Images...)
	return cp
}
