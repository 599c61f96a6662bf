package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/youruser/cardgen/internal/config"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/util"
	"github.com/youruser/cardgen/internal/watermark"
)

func runWatermark(cfg *config.Config, logger zerolog.Logger, args []string) error {
	def := watermark.DefaultPlacement()
	fs := flag.NewFlagSet("watermark", flag.ExitOnError)
	in := fs.String("in", "", "directory of base images (required)")
	markPath := fs.String("mark", "", "watermark image path")
	qrText := fs.String("qr", "", "use a QR code of this text as the watermark")
	qrSize := fs.Int("qr-size", 256, "QR code size in pixels")
	preset := fs.String("preset", "", "named position, e.g. bottom-right")
	x := fs.Float64("x", def.XPercent, "centre x in percent")
	y := fs.Float64("y", def.YPercent, "centre y in percent")
	opacity := fs.Float64("opacity", def.Opacity, "opacity 0..1")
	scale := fs.Float64("scale", def.Scale, "watermark scale")
	rotation := fs.Float64("rotation", 0, "clockwise rotation in degrees")
	blend := fs.String("blend", string(def.BlendMode), "blend mode")
	stagger := fs.Duration("stagger", cfg.BatchStagger, "pause between outputs")
	out := fs.String("out", cfg.OutputDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return fmt.Errorf("-in is required")
	}

	job := watermark.NewJob()
	bases, err := readImages(*in, logger)
	if err != nil {
		return err
	}
	job.Add(bases...)

	mark, err := readMark(*markPath, *qrText, *qrSize)
	if err != nil {
		return err
	}
	job.SetMark(mark)

	p := watermark.Placement{
		XPercent:        *x,
		YPercent:        *y,
		Opacity:         *opacity,
		Scale:           *scale,
		RotationDegrees: *rotation,
		BlendMode:       imagepkg.BlendMode(*blend),
	}
	if err := job.SetPlacement(p); err != nil {
		return err
	}
	if *preset != "" {
		if err := job.ApplyPreset(*preset); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watermark.Batch(ctx, job.Snapshot(), *stagger, func(o watermark.Output) error {
		p, err := util.WriteFile(*out, o.Name, o.Data)
		if err != nil {
			return err
		}
		logger.Info().Str("path", p).Msg("watermarked")
		return nil
	})
}

// readImages decodes every supported image in dir, in name order.
func readImages(dir string, logger zerolog.Logger) ([]*imagepkg.Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var assets []*imagepkg.Asset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := imaging.FormatFromFilename(e.Name()); err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		a, err := imagepkg.Decode(e.Name(), data)
		if err != nil {
			logger.Warn().Err(err).Str("file", e.Name()).Msg("skipping")
			continue
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func readMark(path, qrText string, qrSize int) (*imagepkg.Asset, error) {
	switch {
	case qrText != "":
		return imagepkg.QRMark(qrText, qrSize)
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return imagepkg.Decode(filepath.Base(path), data)
	}
	return nil, fmt.Errorf("-mark or -qr is required")
}
