package imagepkg

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardgen/internal/util"
)

// Loader resolves image references: uploaded asset ids, data URIs and, when
// enabled, http(s) URLs and local paths.
type Loader struct {
	Assets       *AssetStore
	FetchTimeout time.Duration
	// AllowRemote enables server-side fetching of http(s) references.
	AllowRemote bool
	AllowFiles  bool
	// MaxBytes caps a fetched body; zero means no cap.
	MaxBytes int64
}

// Load blocks until ref is decoded or fails. Every failure wraps ErrDecode.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty image reference", ErrDecode)
	}
	if l.Assets != nil {
		if a, ok := l.Assets.Get(ref); ok {
			return a.Image, nil
		}
	}
	data, err := l.read(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if !l.AllowRemote {
			return nil, ErrRemoteDisabled
		}
		if _, err := url.Parse(ref); err != nil {
			return nil, err
		}
		return util.GetBytes(ctx, ref, l.FetchTimeout, l.MaxBytes)
	case l.AllowFiles:
		return os.ReadFile(ref)
	}
	return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, ref)
}

func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	return []byte(s), err
}

// Pending is an in-flight decode started by Start.
type Pending struct {
	done chan struct{}
	img  image.Image
	err  error
}

// Start decodes ref in the background.
func (l *Loader) Start(ctx context.Context, ref string) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.img, p.err = l.Load(ctx, ref)
	}()
	return p
}

// Wait returns the decode outcome, or ctx's error if it ends first.
func (p *Pending) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-p.done:
		return p.img, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
