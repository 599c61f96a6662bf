package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// JPEGQuality matches the 0.95 quality used for card exports.
const JPEGQuality = 95

// ParseFormat accepts "png", "jpeg" and "jpg".
func ParseFormat(s string) (imaging.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return imaging.PNG, nil
	case "jpeg", "jpg":
		return imaging.JPEG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatForName picks the encoder from a file name, falling back to PNG.
func FormatForName(name string) imaging.Format {
	f, err := imaging.FormatFromFilename(name)
	if err != nil {
		return imaging.PNG
	}
	return f
}

// Ext is the file extension without the dot.
func Ext(f imaging.Format) string {
	return strings.ToLower(f.String())
}

func MIME(f imaging.Format) string {
	return "image/" + Ext(f)
}

// Encode serialises img. Errors wrap ErrEncode and no bytes are returned.
func Encode(img image.Image, f imaging.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
