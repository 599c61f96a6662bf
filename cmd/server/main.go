package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/youruser/cardgen/internal/api"
	"github.com/youruser/cardgen/internal/config"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/render"
	"github.com/youruser/cardgen/internal/textlayout"
)

func main() {
	// optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger := config.NewLogger(cfg.AppEnv, cfg.LogLevel)

	fonts := textlayout.NewFonts()
	if cfg.FontDir != "" {
		n, err := fonts.LoadDir(cfg.FontDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", cfg.FontDir).Msg("failed to load fonts")
		}
		logger.Info().Int("count", n).Str("dir", cfg.FontDir).Msg("fonts loaded")
	}

	assets := imagepkg.NewAssetStore()
	loader := &imagepkg.Loader{
		Assets:       assets,
		FetchTimeout: cfg.AssetFetchTimeout,
		AllowRemote:  cfg.AllowRemoteAssets,
		MaxBytes:     cfg.MaxUploadBytes(),
	}
	renderer := render.New(fonts, loader, logger)
	renderer.MaxScale = cfg.MaxScale
	renderer.MaxPixels = cfg.MaxExportPixels
	srv := api.New(api.Options{
		Renderer:       renderer,
		Assets:         assets,
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		DefaultScale:   cfg.DefaultScale,
		MaxQRSize:      cfg.MaxQRSize,
	})

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	r.Use(gin.Recovery(), api.RequestID(), api.Logger(logger))
	api.RegisterRoutes(r, srv)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Msgf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
