package card

import (
	"fmt"
	"math"
)

// Editor owns the live CardConfig. All mutation goes through its methods so the
// invariants hold for every snapshot handed to a renderer. Editor is not safe
// for concurrent use; callers serialise access.
type Editor struct {
	cfg      CardConfig
	revision uint64
}

func NewEditor() *Editor {
	return &Editor{cfg: Default()}
}

// NewEditorFrom starts from cfg after validating it.
func NewEditorFrom(cfg CardConfig) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Editor{cfg: cfg.Clone()}, nil
}

// Snapshot returns a deep copy for rendering.
func (e *Editor) Snapshot() CardConfig { return e.cfg.Clone() }

// Revision increases on every accepted mutation.
func (e *Editor) Revision() uint64 { return e.revision }

func (e *Editor) touch() { e.revision++ }

func (e *Editor) Reset() {
	e.cfg = Default()
	e.touch()
}

func (e *Editor) SetDimensions(width, height int) error {
	if !validDimensions(width, height) {
		return ErrInvalidDimensions
	}
	e.cfg.Dimensions = Dimensions{Width: width, Height: height}
	e.touch()
	return nil
}

func (e *Editor) SetBackgroundMode(m BackgroundMode) error {
	switch m {
	case BackgroundColor, BackgroundGradient, BackgroundImage:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	e.cfg.Background.Mode = m
	e.touch()
	return nil
}

func (e *Editor) SetColor(hex string) error {
	if _, err := ParseColor(hex); err != nil {
		return err
	}
	e.cfg.Background.Color = hex
	e.touch()
	return nil
}

// AddGradientStop appends a stop. A sixth stop is refused.
func (e *Editor) AddGradientStop(hex string) error {
	if _, err := ParseColor(hex); err != nil {
		return err
	}
	if len(e.cfg.Background.GradientStops) >= MaxGradientStops {
		return ErrGradientStopLimit
	}
	e.cfg.Background.GradientStops = append(e.cfg.Background.GradientStops, hex)
	e.touch()
	return nil
}

// RemoveGradientStop removes the stop at index. Going below two stops is refused.
func (e *Editor) RemoveGradientStop(index int) error {
	stops := e.cfg.Background.GradientStops
	if len(stops) <= MinGradientStops {
		return ErrGradientStopLimit
	}
	if index < 0 || index >= len(stops) {
		return ErrStopIndex
	}
	e.cfg.Background.GradientStops = append(stops[:index:index], stops[index+1:]...)
	e.touch()
	return nil
}

// RemoveLastGradientStop mirrors the "remove color" control.
func (e *Editor) RemoveLastGradientStop() error {
	return e.RemoveGradientStop(len(e.cfg.Background.GradientStops) - 1)
}

func (e *Editor) SetGradientStop(index int, hex string) error {
	if _, err := ParseColor(hex); err != nil {
		return err
	}
	if index < 0 || index >= len(e.cfg.Background.GradientStops) {
		return ErrStopIndex
	}
	e.cfg.Background.GradientStops[index] = hex
	e.touch()
	return nil
}

func (e *Editor) SetGradientAngle(deg float64) {
	e.cfg.Background.GradientAngle = math.Mod(deg, 360)
	e.touch()
}

// SetImage points the background at an image reference and switches to image mode.
func (e *Editor) SetImage(ref string) {
	e.cfg.Background.ImageRef = ref
	e.cfg.Background.Mode = BackgroundImage
	e.touch()
}

func (e *Editor) SetImageFit(f ImageFit) error {
	if !validFit(f) {
		return fmt.Errorf("%w: %q", ErrUnknownFit, f)
	}
	e.cfg.Background.ImageFit = f
	e.touch()
	return nil
}

func (e *Editor) SetImageBlur(px float64) {
	e.cfg.Background.ImageBlurPx = math.Max(0, px)
	e.touch()
}

func (e *Editor) SetImageOpacity(v float64) {
	e.cfg.Background.ImageOpacity = clamp01(v)
	e.touch()
}

// SetPattern replaces the pattern settings, clamping count and opacity.
func (e *Editor) SetPattern(p Pattern) error {
	if !validPattern(p.Kind) {
		return fmt.Errorf("%w: %q", ErrUnknownPattern, p.Kind)
	}
	if _, err := ParseColor(p.Color); err != nil {
		return err
	}
	p.Count = min(max(p.Count, 0), MaxPatternCount)
	p.Opacity = clamp01(p.Opacity)
	e.cfg.Pattern = p
	e.touch()
	return nil
}

func (e *Editor) SetTextContent(s string) {
	e.cfg.Text.Content = s
	e.touch()
}

func (e *Editor) SetFont(family string, sizePx float64) error {
	if sizePx <= 0 || sizePx > MaxFontSizePx {
		return ErrInvalidFontSize
	}
	if family != "" {
		e.cfg.Text.FontFamily = family
	}
	e.cfg.Text.FontSizePx = sizePx
	e.touch()
	return nil
}

func (e *Editor) SetTextColor(hex string) error {
	if _, err := ParseColor(hex); err != nil {
		return err
	}
	e.cfg.Text.Color = hex
	e.touch()
	return nil
}

func (e *Editor) SetAlign(a Align) error {
	if !validAlign(a) {
		return fmt.Errorf("%w: %q", ErrUnknownAlign, a)
	}
	e.cfg.Text.Align = a
	e.touch()
	return nil
}

// SetTextPosition pins the text container's top-left corner.
func (e *Editor) SetTextPosition(p Point) {
	e.cfg.Text.Position = &Point{X: p.X, Y: p.Y}
	e.touch()
}

// ClearTextPosition returns the text to auto layout.
func (e *Editor) ClearTextPosition() {
	e.cfg.Text.Position = nil
	e.touch()
}

func (e *Editor) SetBorderRadius(px float64) {
	e.cfg.BorderRadiusPx = math.Max(0, px)
	e.touch()
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
