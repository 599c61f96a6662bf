package watermark

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

// Output is one encoded watermarked image.
type Output struct {
	Name string
	Data []byte
	MIME string
}

// OutputName appends "_watermarked" before the extension.
func OutputName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_watermarked" + ext
}

// Export renders and encodes base image i. The encoder follows the file
// extension, defaulting to PNG.
func (j *Job) Export(i int) (Output, error) {
	img, err := j.Render(i)
	if err != nil {
		return Output{}, err
	}
	name := j.Images[i].Name
	f := imagepkg.FormatForName(name)
	data, err := imagepkg.Encode(img, f)
	if err != nil {
		return Output{}, err
	}
	if _, extErr := imaging.FormatFromFilename(name); extErr != nil {
		name += "." + imagepkg.Ext(f)
	}
	return Output{Name: OutputName(name), Data: data, MIME: imagepkg.MIME(f)}, nil
}

// Batch exports every base image in order, handing each result to sink and
// waiting stagger between them. It stops at the first error or when ctx is
// done.
func Batch(ctx context.Context, j Job, stagger time.Duration, sink func(Output) error) error {
	if len(j.Images) == 0 || j.Mark == nil {
		return ErrNothingToExport
	}
	seen := make(map[string]bool, len(j.Images))
	for i := range j.Images {
		if i > 0 && stagger > 0 {
			t := time.NewTimer(stagger)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := j.Export(i)
		if err != nil {
			return err
		}
		out.Name = uniqueName(out.Name, i, seen)
		if err := sink(out); err != nil {
			return err
		}
	}
	return nil
}

// uniqueName suffixes the image index when name was already produced in
// this batch, so same-named sources do not overwrite each other.
func uniqueName(name string, i int, seen map[string]bool) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := i; seen[name]; n++ {
		name = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	seen[name] = true
	return name
}
