package video

import (
	"iter"
	"sort"
)

// SpriteLayerPriority is the slot reserved for the sprite layer. Layers
// below it are background, layers at or above it are foreground.
const SpriteLayerPriority = 0

type layerEntry struct {
	priority int
	layer    *Layer
}

// LayerManager keeps registered layers ordered by priority, then by
// insertion order. It only references layers; creating and dropping
// their buffers is up to the owner.
type LayerManager struct {
	entries []layerEntry
}

func NewLayerManager() *LayerManager {
	return &LayerManager{}
}

// Add registers l at priority. Adding a layer that is already registered
// moves it to the new priority, behind any layers already there.
func (m *LayerManager) Add(l *Layer, priority int) {
	m.Remove(l)

	// first entry with a strictly greater priority
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].priority > priority
	})

	entries := make([]layerEntry, 0, len(m.entries)+1)
	entries = append(entries, m.entries[:i]...)
	entries = append(entries, layerEntry{priority: priority, layer: l})
	entries = append(entries, m.entries[i:]...)
	m.entries = entries
}

// Remove unregisters l. Removing a layer that is not registered is a
// no-op and reports false.
func (m *LayerManager) Remove(l *Layer) bool {
	i := m.index(l)
	if i < 0 {
		return false
	}

	// a fresh slice keeps iterations that are already running intact
	entries := make([]layerEntry, 0, len(m.entries)-1)
	entries = append(entries, m.entries[:i]...)
	entries = append(entries, m.entries[i+1:]...)
	m.entries = entries
	return true
}

func (m *LayerManager) Contains(l *Layer) bool {
	return m.index(l) >= 0
}

// Priority returns the priority l was registered with.
func (m *LayerManager) Priority(l *Layer) (int, bool) {
	i := m.index(l)
	if i < 0 {
		return 0, false
	}
	return m.entries[i].priority, true
}

func (m *LayerManager) Len() int {
	return len(m.entries)
}

func (m *LayerManager) index(l *Layer) int {
	for i, e := range m.entries {
		if e.layer == l {
			return i
		}
	}
	return -1
}

// All yields every registered layer in compositing order.
func (m *LayerManager) All() iter.Seq[*Layer] {
	return m.filter(func(int) bool { return true })
}

// Background yields layers drawn behind the sprites.
func (m *LayerManager) Background() iter.Seq[*Layer] {
	return m.filter(func(p int) bool { return p < SpriteLayerPriority })
}

// Foreground yields layers drawn in front of the sprites, the sprite
// layer slot included.
func (m *LayerManager) Foreground() iter.Seq[*Layer] {
	return m.filter(func(p int) bool { return p >= SpriteLayerPriority })
}

// filter yields the layers whose priority passes keep. Each run of the
// returned sequence walks the registry as it is when the run starts.
func (m *LayerManager) filter(keep func(priority int) bool) iter.Seq[*Layer] {
	return func(yield func(*Layer) bool) {
		for _, e := range m.entries {
			if !keep(e.priority) {
				continue
			}
			if !yield(e.layer) {
				return
			}
		}
	}
}
