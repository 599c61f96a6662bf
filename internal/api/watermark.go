package api

import (
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/watermark"
)

func (s *Server) writeJob(c *gin.Context, status int) {
	c.JSON(status, s.job.Snapshot())
}

func (s *Server) getJob(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeJob(c, http.StatusOK)
}

// uploadImages appends every decodable file of the "files" field. Files that
// fail to decode are skipped and reported.
func (s *Server) uploadImages(c *gin.Context) {
	files, err := s.uploads(c, "files")
	if err != nil {
		s.mapError(c, err)
		return
	}
	var added []*imagepkg.Asset
	var skipped []string
	for _, fh := range files {
		a, err := s.store(fh)
		if err != nil {
			s.logger.Warn().Err(err).Str("file", fh.Filename).Msg("skipping watermark base image")
			skipped = append(skipped, fh.Filename)
			continue
		}
		added = append(added, a)
	}
	if len(added) == 0 {
		s.mapError(c, fmt.Errorf("%w: no decodable images", imagepkg.ErrDecode))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job.Add(added...)
	c.JSON(http.StatusCreated, gin.H{"job": s.job.Snapshot(), "skipped": skipped})
}

func (s *Server) removeImage(c *gin.Context) {
	i, err := pathIndex(c)
	if err != nil {
		s.mapError(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job.Remove(i)
	s.writeJob(c, http.StatusOK)
}

func (s *Server) selectImage(c *gin.Context) {
	i, err := pathIndex(c)
	if err != nil {
		s.mapError(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.job.Select(i); err != nil {
		s.mapError(c, err)
		return
	}
	s.writeJob(c, http.StatusOK)
}

func (s *Server) uploadMark(c *gin.Context) {
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
	s.job.SetMark(a)
	s.writeJob(c, http.StatusCreated)
}

type qrRequest struct {
	Text string `json:"text" binding:"required"`
	Size int    `json:"size"`
}

// qrMark generates a QR code and installs it as the mark.
func (s *Server) qrMark(c *gin.Context) {
	var req qrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.mapError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if err := s.checkQRSize(req.Size); err != nil {
		s.mapError(c, err)
		return
	}
	a, err := imagepkg.QRMark(req.Text, req.Size)
	if err != nil {
		s.mapError(c, err)
		return
	}
	s.assets.Add(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job.SetMark(a)
	s.writeJob(c, http.StatusCreated)
}

func (s *Server) clearMark(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job.ClearMark()
	s.writeJob(c, http.StatusOK)
}

func (s *Server) setPlacement(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// unspecified fields keep their current values
	p := s.job.Placement
	if err := c.ShouldBindJSON(&p); err != nil {
		s.mapError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if err := s.job.SetPlacement(p); err != nil {
		s.mapError(c, err)
		return
	}
	s.writeJob(c, http.StatusOK)
}

func (s *Server) applyPreset(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.job.ApplyPreset(c.Param("name")); err != nil {
		s.mapError(c, err)
		return
	}
	s.writeJob(c, http.StatusOK)
}

func (s *Server) jobSnapshot() watermark.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job.Snapshot()
}

func (s *Server) watermarkPreview(c *gin.Context) {
	job := s.jobSnapshot()
	data, err := imagepkg.Encode(job.Preview(s.renderer.Fonts), imaging.PNG)
	if err != nil {
		s.mapError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) downloadImage(c *gin.Context) {
	i, err := pathIndex(c)
	if err != nil {
		s.mapError(c, err)
		return
	}
	job := s.jobSnapshot()
	out, err := job.Export(i)
	if err != nil {
		s.mapError(c, err)
		return
	}
	attachment(c, out.Name, out.MIME, out.Data)
}

// batch returns every watermarked image in one zip archive.
func (s *Server) batch(c *gin.Context) {
	job := s.jobSnapshot()
	var outputs []watermark.Output
	err := watermark.Batch(c.Request.Context(), job, 0, func(o watermark.Output) error {
		outputs = append(outputs, o)
		return nil
	})
	if err != nil {
		s.mapError(c, err)
		return
	}
	data, err := archive(outputs)
	if err != nil {
		s.mapError(c, err)
		return
	}
	attachment(c, "watermarked.zip", "application/zip", data)
}
