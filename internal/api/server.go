package api

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/youruser/cardgen/internal/card"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/render"
	"github.com/youruser/cardgen/internal/textlayout"
	"github.com/youruser/cardgen/internal/watermark"
)

// Options configures a Server.
type Options struct {
	Renderer       *render.Renderer
	Assets         *imagepkg.AssetStore
	Logger         zerolog.Logger
	MaxUploadBytes int64
	DefaultScale   int
	MaxQRSize      int
	// Now is used for guide flashes; defaults to time.Now.
	Now func() time.Time
}

// Server holds the single editing session behind the HTTP handlers. mu
// serialises every command so the editor, dragger and watermark job see one
// logical thread; rendering runs on snapshots outside the lock.
type Server struct {
	mu      sync.Mutex
	editor  *card.Editor
	dragger *textlayout.Dragger
	job     *watermark.Job

	renderer  *render.Renderer
	assets    *imagepkg.AssetStore
	logger    zerolog.Logger
	maxUpload int64
	scale     int
	maxQR     int
	now       func() time.Time
}

func New(opts Options) *Server {
	s := &Server{
		editor:    card.NewEditor(),
		dragger:   textlayout.NewDragger(),
		job:       watermark.NewJob(),
		renderer:  opts.Renderer,
		assets:    opts.Assets,
		logger:    opts.Logger,
		maxUpload: opts.MaxUploadBytes,
		scale:     opts.DefaultScale,
		maxQR:     opts.MaxQRSize,
		now:       opts.Now,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = 20 << 20
	}
	if s.scale < 1 {
		s.scale = 4
	}
	if s.maxQR <= 0 || s.maxQR > imagepkg.MaxQRSize {
		s.maxQR = 1024
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// snapshot returns the current config and its revision.
func (s *Server) snapshot() (card.CardConfig, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Snapshot(), s.editor.Revision()
}

func (s *Server) revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Revision()
}

func canvasSize(cfg card.CardConfig) textlayout.Size {
	return textlayout.Size{W: float64(cfg.Dimensions.Width), H: float64(cfg.Dimensions.Height)}
}
