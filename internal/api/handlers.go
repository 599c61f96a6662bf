package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardgen/internal/card"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/textlayout"
)

// maxPreviewAttempts bounds re-renders when the config changes while a
// preview is decoding its background.
const maxPreviewAttempts = 3

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type cardResponse struct {
	Config   card.CardConfig `json:"config"`
	Revision uint64          `json:"revision"`
}

func (s *Server) writeCard(c *gin.Context) {
	cfg := s.editor.Snapshot()
	c.JSON(http.StatusOK, cardResponse{Config: cfg, Revision: s.editor.Revision()})
}

func (s *Server) getCard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeCard(c)
}

func (s *Server) patchCard(c *gin.Context) {
	var p card.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		s.mapError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editor.Apply(p); err != nil {
		s.mapError(c, err)
		return
	}
	s.writeCard(c)
}

func (s *Server) resetCard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.Reset()
	s.dragger.End()
	s.writeCard(c)
}

type colorRequest struct {
	Color string `json:"color" binding:"required"`
}

func (s *Server) addStop(c *gin.Context) {
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.mapError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editor.AddGradientStop(req.Color); err != nil {
		s.mapError(c, err)
		return
	}
	s.writeCard(c)
}

func (s *Server) setStop(c *gin.Context) {
	i, err := pathIndex(c)
	if err != nil {
		s.mapError(c, err)
		return
	}
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.mapError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editor.SetGradientStop(i, req.Color); err != nil {
		s.mapError(c, err)
		return
	}
	s.writeCard(c)
}

// removeStop accepts an index or "last".
func (s *Server) removeStop(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if c.Param("index") == "last" {
		err = s.editor.RemoveLastGradientStop()
	} else {
		var i int
		if i, err = pathIndex(c); err == nil {
			err = s.editor.RemoveGradientStop(i)
		}
	}
	if err != nil {
		s.mapError(c, err)
		return
	}
	s.writeCard(c)
}

func (s *Server) uploadBackground(c *gin.Context) {
	files, err := s.uploads(c, "file")
	if err != nil {
		s.mapError(c, err)
		return
	}
	a, err := s.store(files[0])
	if err != nil {
		s.mapError(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetImage(a.ID)
	c.JSON(http.StatusCreated, gin.H{"asset": a, "config": s.editor.Snapshot(), "revision": s.editor.Revision()})
}

func (s *Server) asset(c *gin.Context) {
	a, ok := s.assets.Get(c.Param("id"))
	if !ok {
		s.mapError(c, fmt.Errorf("%w: %s", imagepkg.ErrAssetNotFound, c.Param("id")))
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(a.Data), a.Data)
}

func (s *Server) patternShapes(c *gin.Context) {
	scale, err := queryInt(c, "scale", 1)
	if err == nil {
		err = s.renderer.CheckScale(scale)
	}
	if err != nil {
		s.mapError(c, err)
		return
	}
	cfg, _ := s.snapshot()
	c.JSON(http.StatusOK, gin.H{"shapes": s.renderer.Shapes(cfg, scale)})
}

func (s *Server) textLayout(c *gin.Context) {
	cfg, _ := s.snapshot()
	c.JSON(http.StatusOK, s.renderer.Layout(cfg))
}

func (s *Server) clearPosition(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.ClearTextPosition()
	s.writeCard(c)
}

type dragResponse struct {
	Position card.Point        `json:"position"`
	Guides   textlayout.Guides `json:"guides"`
}

func (s *Server) dragStart(c *gin.Context) {
	var pointer card.Point
	if err := c.ShouldBindJSON(&pointer); err != nil {
		s.mapError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.editor.Snapshot()
	box := s.renderer.Layout(cfg).Box
	pos := s.dragger.Start(pointer, cfg.Text.Position, box, canvasSize(cfg))
	if cfg.Text.Position == nil {
		s.editor.SetTextPosition(pos)
	}
	c.JSON(http.StatusOK, dragResponse{Position: pos, Guides: s.dragger.Guides(s.now())})
}

func (s *Server) dragMove(c *gin.Context) {
	var pointer card.Point
	if err := c.ShouldBindJSON(&pointer); err != nil {
		s.mapError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, g, ok := s.dragger.Move(pointer)
	if !ok {
		s.mapError(c, errNotDragging)
		return
	}
	s.editor.SetTextPosition(pos)
	c.JSON(http.StatusOK, dragResponse{Position: pos, Guides: g})
}

func (s *Server) dragEnd(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragger.End()
	c.JSON(http.StatusOK, gin.H{"guides": s.dragger.Guides(s.now())})
}

func (s *Server) recenter(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.editor.Snapshot()
	now := s.now()
	pos := s.dragger.Recenter(s.renderer.Layout(cfg).Box, canvasSize(cfg), now)
	s.editor.SetTextPosition(pos)
	c.JSON(http.StatusOK, dragResponse{Position: pos, Guides: s.dragger.Guides(now)})
}

func (s *Server) guides(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.dragger.Guides(s.now()))
}

// preview renders the SVG document. If the config changed while the
// background was decoding, the stale result is dropped and rendered again.
func (s *Server) preview(c *gin.Context) {
	ctx := c.Request.Context()
	var svg string
	for attempt := 1; ; attempt++ {
		cfg, rev := s.snapshot()
		out, err := s.renderer.Preview(ctx, cfg)
		if err != nil {
			s.mapError(c, err)
			return
		}
		svg = out
		if s.revision() == rev || attempt == maxPreviewAttempts {
			break
		}
		s.logger.Debug().Uint64("revision", rev).Msg("config changed during preview, re-rendering")
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

func (s *Server) export(c *gin.Context) {
	scale, err := queryInt(c, "scale", s.scale)
	if err != nil {
		s.mapError(c, err)
		return
	}
	f, err := imagepkg.ParseFormat(c.Query("format"))
	if err != nil {
		s.mapError(c, err)
		return
	}
	cfg, _ := s.snapshot()
	res, err := s.renderer.Export(c.Request.Context(), cfg, scale, f)
	if err != nil {
		s.mapError(c, err)
		return
	}
	attachment(c, res.Filename, res.MIME, res.Data)
}

func (s *Server) qr(c *gin.Context) {
	text := c.DefaultQuery("text", "cardgen")
	size, err := queryInt(c, "size", 400)
	if err == nil {
		err = s.checkQRSize(size)
	}
	if err != nil {
		s.mapError(c, err)
		return
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		s.mapError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) checkQRSize(size int) error {
	if size > s.maxQR {
		return fmt.Errorf("%w: %d > %d", imagepkg.ErrQRSize, size, s.maxQR)
	}
	return nil
}

// uploads returns the files of a multipart field, enforcing the upload limit.
func (s *Server) uploads(c *gin.Context, field string) ([]*multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: missing %q file", errBadRequest, field)
	}
	return files, nil
}

func (s *Server) store(fh *multipart.FileHeader) (*imagepkg.Asset, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return s.assets.Put(fh.Filename, data)
}

func attachment(c *gin.Context, name, mime string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name))
	c.Data(http.StatusOK, mime, data)
}

func pathIndex(c *gin.Context) (int, error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", errBadRequest, c.Param("index"))
	}
	return i, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errBadRequest, key, v)
	}
	return i, nil
}
