package textlayout

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is used when a requested family is not registered.
const DefaultFamily = "Go"

// EmbedFamily is the font-family name under which previews embed the
// resolved font.
const EmbedFamily = "card-text"

type entry struct {
	font *truetype.Font
	ttf  []byte
}

// Fonts maps family names to parsed TrueType fonts.
type Fonts struct {
	mu    sync.RWMutex
	fonts map[string]entry
}

// NewFonts returns a registry holding the embedded Go fonts.
func NewFonts() *Fonts {
	f := &Fonts{fonts: map[string]entry{}}
	if err := f.Register(DefaultFamily, goregular.TTF); err != nil {
		panic(err)
	}
	if err := f.Register("Go Bold", gobold.TTF); err != nil {
		panic(err)
	}
	return f
}

func (f *Fonts) Register(family string, ttf []byte) error {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	f.mu.Lock()
	f.fonts[key(family)] = entry{font: parsed, ttf: ttf}
	f.mu.Unlock()
	return nil
}

// LoadDir registers every .ttf file in dir under its file name without
// extension and returns how many were loaded.
func (f *Fonts) LoadDir(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.ttf"))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return n, err
		}
		family := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		if err := f.Register(family, data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Has reports whether family is registered.
func (f *Fonts) Has(family string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.fonts[key(family)]
	return ok
}

// Families lists registered family keys.
func (f *Fonts) Families() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.fonts))
	for k := range f.fonts {
		out = append(out, k)
	}
	return out
}

// lookup resolves family, falling back to DefaultFamily.
func (f *Fonts) lookup(family string) entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if e, ok := f.fonts[key(family)]; ok {
		return e
	}
	return f.fonts[key(DefaultFamily)]
}

// Face returns an unhinted face at sizePx, so measurements scale linearly
// with size.
func (f *Fonts) Face(family string, sizePx float64) font.Face {
	return truetype.NewFace(f.lookup(family).font, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// FontFaceCSS is an @font-face rule carrying the TTF that family resolves to,
// named EmbedFamily, so an SVG preview draws with the export's glyphs.
func (f *Fonts) FontFaceCSS(family string) string {
	return fmt.Sprintf(`@font-face { font-family: %q; src: url(data:font/ttf;base64,%s) format("truetype"); }`,
		EmbedFamily, base64.StdEncoding.EncodeToString(f.lookup(family).ttf))
}

func key(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
