package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/youruser/cardgen/internal/card"
	"github.com/youruser/cardgen/internal/config"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/render"
	"github.com/youruser/cardgen/internal/util"
)

func runRender(cfg *config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cfgPath := fs.String("config", "", "card JSON; fields not given keep their defaults")
	scale := fs.Int("scale", cfg.DefaultScale, "export scale factor")
	format := fs.String("format", "png", "png or jpeg")
	out := fs.String("out", cfg.OutputDir, "output directory")
	preview := fs.Bool("svg", false, "also write the SVG preview")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cardCfg, err := readCard(*cfgPath)
	if err != nil {
		return err
	}
	f, err := imagepkg.ParseFormat(*format)
	if err != nil {
		return err
	}
	fonts, err := loadFonts(cfg, logger)
	if err != nil {
		return err
	}

	loader := &imagepkg.Loader{
		FetchTimeout: cfg.AssetFetchTimeout,
		AllowRemote:  true,
		AllowFiles:   true,
		MaxBytes:     cfg.MaxUploadBytes(),
	}
	r := render.New(fonts, loader, logger)
	r.MaxScale = cfg.MaxScale
	r.MaxPixels = cfg.MaxExportPixels
	ctx := context.Background()

	res, err := r.Export(ctx, cardCfg, *scale, f)
	if err != nil {
		return err
	}
	p, err := util.WriteFile(*out, res.Filename, res.Data)
	if err != nil {
		return err
	}
	logger.Info().Str("path", p).Int("bytes", len(res.Data)).Msg("card written")

	if *preview {
		svg, err := r.Preview(ctx, cardCfg)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(res.Filename, "."+imagepkg.Ext(f)) + ".svg"
		if p, err = util.WriteFile(*out, name, []byte(svg)); err != nil {
			return err
		}
		logger.Info().Str("path", p).Msg("preview written")
	}
	return nil
}

// readCard overlays the JSON at path on the default card and validates it.
func readCard(path string) (card.CardConfig, error) {
	cfg := card.Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	ed, err := card.NewEditorFrom(cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return ed.Snapshot(), nil
}
