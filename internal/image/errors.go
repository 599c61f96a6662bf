package imagepkg

import "errors"

var (
	ErrDecode            = errors.New("image decode failed")
	ErrEncode            = errors.New("image encode failed")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrUnsupportedBlend  = errors.New("unsupported blend mode")
	ErrQRSize            = errors.New("qr size out of range")
	ErrRemoteDisabled    = errors.New("remote image fetching is disabled")
)
