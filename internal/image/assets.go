package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Asset is an uploaded image kept in memory.
type Asset struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Data   []byte      `json:"-"`
	Image  image.Image `json:"-"`
}

// AssetStore holds uploaded images keyed by a generated id.
type AssetStore struct {
	mu     sync.RWMutex
	assets map[string]*Asset
}

func NewAssetStore() *AssetStore {
	return &AssetStore{assets: map[string]*Asset{}}
}

// Decode turns raw upload bytes into an Asset without storing it.
func Decode(name string, data []byte) (*Asset, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	b := img.Bounds()
	return &Asset{
		ID:     uuid.NewString(),
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Data:   data,
		Image:  img,
	}, nil
}

// Put decodes data and stores it.
func (s *AssetStore) Put(name string, data []byte) (*Asset, error) {
	a, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	s.Add(a)
	return a, nil
}

// Add stores an already decoded asset.
func (s *AssetStore) Add(a *Asset) {
	s.mu.Lock()
	s.assets[a.ID] = a
	s.mu.Unlock()
}

func (s *AssetStore) Get(id string) (*Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[id]
	return a, ok
}

func (s *AssetStore) Delete(id string) {
	s.mu.Lock()
	delete(s.assets, id)
	s.mu.Unlock()
}
