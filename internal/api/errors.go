package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardgen/internal/card"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/render"
	"github.com/youruser/cardgen/internal/watermark"
)

var (
	errBadRequest  = errors.New("bad request")
	errNotDragging = errors.New("no drag in progress")
)

type errorResponse struct {
	Error string `json:"error"`
}

// mapError writes the JSON error response for err.
func (s *Server) mapError(c *gin.Context, err error) {
	requestID := c.GetString(requestIDKey)

	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, card.ErrInvalidConfig),
		errors.Is(err, render.ErrInvalidScale),
		errors.Is(err, render.ErrTooLarge),
		errors.Is(err, imagepkg.ErrQRSize),
		errors.Is(err, imagepkg.ErrUnsupportedFormat),
		errors.Is(err, imagepkg.ErrUnsupportedBlend),
		errors.Is(err, watermark.ErrUnknownPreset),
		errors.Is(err, watermark.ErrInvalidPlacement):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, imagepkg.ErrAssetNotFound), errors.Is(err, watermark.ErrIndex):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, imagepkg.ErrDecode):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, errNotDragging), errors.Is(err, watermark.ErrNothingToExport):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn().Str("request_id", requestID).Err(err).Msg("request timed out")
		c.JSON(http.StatusGatewayTimeout, errorResponse{Error: "timed out"})
	case errors.Is(err, imagepkg.ErrEncode):
		s.logger.Error().Str("request_id", requestID).Err(err).Msg("encode failure")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "encode failed"})
	default:
		s.logger.Error().Str("request_id", requestID).Err(err).Msg("internal error")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
