package tiles

import "sync"

// DefaultLevels is the number of zoom levels a [Manager] indexes.
const DefaultLevels = 18

// Manager holds downloaded tile images indexed by zoom level. It is safe
// for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	levels []map[Tile][]byte
}

// NewManager creates a manager for zoom levels [0, levels).
// A non-positive levels means [DefaultLevels].
func NewManager(levels int) *Manager {
	if levels <= 0 {
		levels = DefaultLevels
	}
	m := &Manager{levels: make([]map[Tile][]byte, levels)}
	for i := range m.levels {
		m.levels[i] = make(map[Tile][]byte)
	}
	return m
}

// Levels returns the number of zoom levels.
func (m *Manager) Levels() int { return len(m.levels) }

// Get returns the image of t.
func (m *Manager) Get(t Tile) ([]byte, bool) {
	if t.Z < 0 || t.Z >= len(m.levels) {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.levels[t.Z][t]
	return data, ok
}

// Put stores the image of t. Tiles outside the indexed levels are dropped.
func (m *Manager) Put(t Tile, data []byte) bool {
	if t.Z < 0 || t.Z >= len(m.levels) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[t.Z][t] = data
	return true
}

// Count returns how many tiles are held at zoom z.
func (m *Manager) Count(z int) int {
	if z < 0 || z >= len(m.levels) {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.levels[z])
}

// Len returns the total number of tiles held.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, lvl := range m.levels {
		n += len(lvl)
	}
	return n
}

// ClearLevel drops every tile at zoom z.
func (m *Manager) ClearLevel(z int) {
	if z < 0 || z >= len(m.levels) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[z] = make(map[Tile][]byte)
}
