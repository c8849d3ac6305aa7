package tiles

import "testing"

func TestManager(t *testing.T) {
	m := NewManager(0)
	if m.Levels() != DefaultLevels {
		t.Errorf("Levels() = %d, want %d", m.Levels(), DefaultLevels)
	}
	if !m.Put(Tile{Z: 2, X: 1, Y: 1}, []byte("a")) || !m.Put(Tile{Z: 2, X: 0, Y: 1}, []byte("b")) {
		t.Fatal("Put in range should succeed")
	}
	if m.Put(Tile{Z: DefaultLevels}, []byte("c")) {
		t.Error("Put beyond the last level should be dropped")
	}
	if data, ok := m.Get(Tile{Z: 2, X: 1, Y: 1}); !ok || string(data) != "a" {
		t.Errorf("Get = %q, %v", data, ok)
	}
	if m.Count(2) != 2 || m.Len() != 2 {
		t.Errorf("Count/Len = %d/%d, want 2/2", m.Count(2), m.Len())
	}
	m.ClearLevel(2)
	if m.Len() != 0 {
		t.Errorf("Len after ClearLevel = %d", m.Len())
	}
}
