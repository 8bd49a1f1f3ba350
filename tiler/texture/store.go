package texture

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/valerio/go-tiler/tiler/video"
)

// ErrNotFound is returned when a texture name is not registered.
var ErrNotFound = errors.New("texture not found")

// Source resolves atlas names to pixel data. Returned buffers are shared
// and must be treated as read-only.
type Source interface {
	Texture(name string) (*video.FrameBuffer, error)
}

// Store is an in-memory Source.
type Store struct {
	textures map[string]*video.FrameBuffer
}

func NewStore() *Store {
	return &Store{
		textures: make(map[string]*video.FrameBuffer),
	}
}

// Add registers fb under name, replacing any previous texture.
func (s *Store) Add(name string, fb *video.FrameBuffer) {
	if _, exists := s.textures[name]; exists {
		slog.Debug("Replacing texture", "name", name)
	}
	s.textures[name] = fb
}

// Remove drops name. Unknown names are ignored.
func (s *Store) Remove(name string) {
	delete(s.textures, name)
}

// Texture implements Source.
func (s *Store) Texture(name string) (*video.FrameBuffer, error) {
	fb, ok := s.textures[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return fb, nil
}

// Names returns the registered names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.textures))
	for name := range s.textures {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *Store) Len() int {
	return len(s.textures)
}
