package imagepkg

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultQRSize is used when a QR size is not positive.
	DefaultQRSize = 256
	MaxQRSize     = 4096
)

// GenerateQRPNG encodes text as a size×size QR code PNG.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	if size > MaxQRSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrQRSize, size, MaxQRSize)
	}
	b, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: qr: %v", ErrEncode, err)
	}
	return b, nil
}

// QRMark renders text as a QR code asset for use as a watermark.
func QRMark(text string, size int) (*Asset, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return Decode("qr.png", b)
}
