package card

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Width          *int            `json:"width,omitempty"`
	Height         *int            `json:"height,omitempty"`
	Mode           *BackgroundMode `json:"mode,omitempty"`
	Color          *string         `json:"color,omitempty"`
	GradientAngle  *float64        `json:"gradient_angle,omitempty"`
	ImageRef       *string         `json:"image_ref,omitempty"`
	ImageFit       *ImageFit       `json:"image_fit,omitempty"`
	ImageBlurPx    *float64        `json:"image_blur_px,omitempty"`
	ImageOpacity   *float64        `json:"image_opacity,omitempty"`
	Pattern        *PatternKind    `json:"pattern,omitempty"`
	PatternColor   *string         `json:"pattern_color,omitempty"`
	PatternOpacity *float64        `json:"pattern_opacity,omitempty"`
	PatternCount   *int            `json:"pattern_count,omitempty"`
	Text           *string         `json:"text,omitempty"`
	FontFamily     *string         `json:"font_family,omitempty"`
	FontSizePx     *float64        `json:"font_size_px,omitempty"`
	TextColor      *string         `json:"text_color,omitempty"`
	Align          *Align          `json:"align,omitempty"`
	BorderRadiusPx *float64        `json:"border_radius_px,omitempty"`
}

// Apply runs the patch through the editor's setters. Either every field is
// applied or none is.
func (e *Editor) Apply(p Patch) error {
	tmp := &Editor{cfg: e.cfg.Clone()}
	if p.Width != nil || p.Height != nil {
		w, h := tmp.cfg.Dimensions.Width, tmp.cfg.Dimensions.Height
		if p.Width != nil {
			w = *p.Width
		}
		if p.Height != nil {
			h = *p.Height
		}
		if err := tmp.SetDimensions(w, h); err != nil {
			return err
		}
	}
	if p.ImageRef != nil {
		tmp.SetImage(*p.ImageRef)
	}
	if p.Mode != nil {
		if err := tmp.SetBackgroundMode(*p.Mode); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if err := tmp.SetColor(*p.Color); err != nil {
			return err
		}
	}
	if p.GradientAngle != nil {
		tmp.SetGradientAngle(*p.GradientAngle)
	}
	if p.ImageFit != nil {
		if err := tmp.SetImageFit(*p.ImageFit); err != nil {
			return err
		}
	}
	if p.ImageBlurPx != nil {
		tmp.SetImageBlur(*p.ImageBlurPx)
	}
	if p.ImageOpacity != nil {
		tmp.SetImageOpacity(*p.ImageOpacity)
	}
	if p.Pattern != nil || p.PatternColor != nil || p.PatternOpacity != nil || p.PatternCount != nil {
		pat := tmp.cfg.Pattern
		if p.Pattern != nil {
			pat.Kind = *p.Pattern
		}
		if p.PatternColor != nil {
			pat.Color = *p.PatternColor
		}
		if p.PatternOpacity != nil {
			pat.Opacity = *p.PatternOpacity
		}
		if p.PatternCount != nil {
			pat.Count = *p.PatternCount
		}
		if err := tmp.SetPattern(pat); err != nil {
			return err
		}
	}
	if p.Text != nil {
		tmp.SetTextContent(*p.Text)
	}
	if p.FontFamily != nil || p.FontSizePx != nil {
		family, size := tmp.cfg.Text.FontFamily, tmp.cfg.Text.FontSizePx
		if p.FontFamily != nil {
			family = *p.FontFamily
		}
		if p.FontSizePx != nil {
			size = *p.FontSizePx
		}
		if err := tmp.SetFont(family, size); err != nil {
			return err
		}
	}
	if p.TextColor != nil {
		if err := tmp.SetTextColor(*p.TextColor); err != nil {
			return err
		}
	}
	if p.Align != nil {
		if err := tmp.SetAlign(*p.Align); err != nil {
			return err
		}
	}
	if p.BorderRadiusPx != nil {
		tmp.SetBorderRadius(*p.BorderRadiusPx)
	}
	e.cfg = tmp.cfg
	e.touch()
	return nil
}
