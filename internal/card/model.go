package card

// BackgroundMode selects how the card background is filled.
type BackgroundMode string

const (
	BackgroundColor    BackgroundMode = "color"
	BackgroundGradient BackgroundMode = "gradient"
	BackgroundImage    BackgroundMode = "image"
)

// ImageFit maps a background image onto the card.
type ImageFit string

const (
	FitCover    ImageFit = "cover"
	FitContain  ImageFit = "contain"
	FitOriginal ImageFit = "original"
)

type PatternKind string

const (
	PatternNone      PatternKind = "none"
	PatternBlobs     PatternKind = "blobs"
	PatternTriangles PatternKind = "triangles"
	PatternCircles   PatternKind = "circles"
	PatternLines     PatternKind = "lines"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

const (
	MinGradientStops = 2
	MaxGradientStops = 5

	// MaxDimension bounds each logical card side.
	MaxDimension    = 8192
	MaxPatternCount = 500
	MaxFontSizePx   = 1000
)

// Dimensions is the logical card size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Background struct {
	Mode          BackgroundMode `json:"mode"`
	Color         string         `json:"color"`
	GradientStops []string       `json:"gradient_stops"`
	GradientAngle float64        `json:"gradient_angle"`
	ImageRef      string         `json:"image_ref"`
	ImageFit      ImageFit       `json:"image_fit"`
	ImageBlurPx   float64        `json:"image_blur_px"`
	ImageOpacity  float64        `json:"image_opacity"`
}

type Pattern struct {
	Kind    PatternKind `json:"kind"`
	Color   string      `json:"color"`
	Opacity float64     `json:"opacity"`
	Count   int         `json:"count"`
}

// Point is a position in logical card units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Text struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"font_family"`
	FontSizePx float64 `json:"font_size_px"`
	Color      string  `json:"color"`
	Align      Align   `json:"align"`
	// Position is the top-left of the padded text container. Nil means auto-centered.
	Position *Point `json:"position,omitempty"`
}

type CardConfig struct {
	Dimensions     Dimensions `json:"dimensions"`
	Background     Background `json:"background"`
	Pattern        Pattern    `json:"pattern"`
	Text           Text       `json:"text"`
	BorderRadiusPx float64    `json:"border_radius_px"`
}

// Default returns the configuration a fresh editor starts with.
func Default() CardConfig {
	return CardConfig{
		Dimensions: Dimensions{Width: 1200, Height: 630},
		Background: Background{
			Mode:          BackgroundColor,
			Color:         "#3b82f6",
			GradientStops: []string{"#8b5cf6", "#ec4899"},
			GradientAngle: 90,
			ImageFit:      FitContain,
			ImageOpacity:  1,
		},
		Pattern: Pattern{
			Kind:    PatternNone,
			Color:   "#ffffff",
			Opacity: 0.2,
			Count:   20,
		},
		Text: Text{
			Content:    "Hello, World!",
			FontFamily: "Go",
			FontSizePx: 72,
			Color:      "#ffffff",
			Align:      AlignCenter,
		},
	}
}

// Clone returns a deep copy.
func (c CardConfig) Clone() CardConfig {
	out := c
	out.Background.GradientStops = append([]string(nil), c.Background.GradientStops...)
	if c.Text.Position != nil {
		p := *c.Text.Position
		out.Text.Position = &p
	}
	return out
}

// Validate reports the first invariant the configuration violates.
func (c CardConfig) Validate() error {
	if !validDimensions(c.Dimensions.Width, c.Dimensions.Height) {
		return ErrInvalidDimensions
	}
	switch c.Background.Mode {
	case BackgroundColor, BackgroundImage:
	case BackgroundGradient:
		if n := len(c.Background.GradientStops); n < MinGradientStops || n > MaxGradientStops {
			return ErrGradientStopLimit
		}
	default:
		return ErrUnknownMode
	}
	if !validFit(c.Background.ImageFit) {
		return ErrUnknownFit
	}
	if !validPattern(c.Pattern.Kind) {
		return ErrUnknownPattern
	}
	if !validAlign(c.Text.Align) {
		return ErrUnknownAlign
	}
	if c.Text.FontSizePx <= 0 || c.Text.FontSizePx > MaxFontSizePx {
		return ErrInvalidFontSize
	}
	if c.Pattern.Count < 0 || c.Pattern.Count > MaxPatternCount || c.Pattern.Opacity < 0 || c.Pattern.Opacity > 1 {
		return ErrOutOfRange
	}
	if c.Background.ImageBlurPx < 0 || c.Background.ImageOpacity < 0 || c.Background.ImageOpacity > 1 {
		return ErrOutOfRange
	}
	if c.BorderRadiusPx < 0 {
		return ErrOutOfRange
	}
	colors := append([]string{c.Background.Color, c.Pattern.Color, c.Text.Color}, c.Background.GradientStops...)
	for _, s := range colors {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}

func validDimensions(w, h int) bool {
	return w > 0 && h > 0 && w <= MaxDimension && h <= MaxDimension
}

func validFit(f ImageFit) bool {
	return f == FitCover || f == FitContain || f == FitOriginal
}

func validPattern(k PatternKind) bool {
	switch k {
	case PatternNone, PatternBlobs, PatternTriangles, PatternCircles, PatternLines:
		return true
	}
	return false
}

func validAlign(a Align) bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}
