// Command cardgen renders cards and watermarks photos without the server.
//
//	cardgen render -config card.json -scale 4 -format png -out out
//	cardgen watermark -in photos -mark logo.png -preset bottom-right -out out
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/youruser/cardgen/internal/config"
	"github.com/youruser/cardgen/internal/textlayout"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := config.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "render":
		err = runRender(cfg, logger, os.Args[2:])
	case "watermark":
		err = runWatermark(cfg, logger, os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error().Err(err).Msg(os.Args[1] + " failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cardgen <render|watermark> [flags]")
}

func loadFonts(cfg *config.Config, logger zerolog.Logger) (*textlayout.Fonts, error) {
	fonts := textlayout.NewFonts()
	if cfg.FontDir == "" {
		return fonts, nil
	}
	n, err := fonts.LoadDir(cfg.FontDir)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("count", n).Str("dir", cfg.FontDir).Msg("fonts loaded")
	return fonts, nil
}
