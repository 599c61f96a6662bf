package card

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid card configuration")
	ErrInvalidDimensions = configErr("width and height must be between 1 and 8192")
	ErrGradientStopLimit = configErr("gradient needs between 2 and 5 stops")
	ErrStopIndex         = configErr("gradient stop index out of range")
	ErrUnknownMode       = configErr("unknown background mode")
	ErrUnknownFit        = configErr("unknown image fit")
	ErrUnknownPattern    = configErr("unknown pattern kind")
	ErrUnknownAlign      = configErr("unknown text alignment")
	ErrInvalidFontSize   = configErr("font size must be between 0 and 1000")
	ErrInvalidColor      = configErr("invalid hex color")
	ErrOutOfRange        = configErr("value out of range")
)

// configError ties every validation error to ErrInvalidConfig.
type configError struct{ msg string }

func (e *configError) Error() string        { return e.msg }
func (e *configError) Is(target error) bool { return target == ErrInvalidConfig }

func configErr(msg string) error { return &configError{msg: msg} }
