package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/qr", s.qr)
		api.GET("/assets/:id", s.asset)

		c := api.Group("/card")
		c.GET("", s.getCard)
		c.PATCH("", s.patchCard)
		c.POST("/reset", s.resetCard)
		c.POST("/gradient/stops", s.addStop)
		c.PUT("/gradient/stops/:index", s.setStop)
		c.DELETE("/gradient/stops/:index", s.removeStop)
		c.POST("/background/image", s.uploadBackground)
		c.GET("/pattern", s.patternShapes)
		c.GET("/text/layout", s.textLayout)
		c.DELETE("/text/position", s.clearPosition)
		c.POST("/text/drag/start", s.dragStart)
		c.POST("/text/drag/move", s.dragMove)
		c.POST("/text/drag/end", s.dragEnd)
		c.POST("/text/recenter", s.recenter)
		c.GET("/guides", s.guides)
		c.GET("/preview", s.preview)
		c.GET("/export", s.export)

		w := api.Group("/watermark")
		w.GET("", s.getJob)
		w.POST("/images", s.uploadImages)
		w.DELETE("/images/:index", s.removeImage)
		w.POST("/images/:index/select", s.selectImage)
		w.GET("/images/:index/download", s.downloadImage)
		w.POST("/mark", s.uploadMark)
		w.POST("/mark/qr", s.qrMark)
		w.DELETE("/mark", s.clearMark)
		w.PUT("/placement", s.setPlacement)
		w.POST("/preset/:name", s.applyPreset)
		w.GET("/preview", s.watermarkPreview)
		w.GET("/batch", s.batch)
	}
}
