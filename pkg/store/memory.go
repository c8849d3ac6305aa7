package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	netio "github.com/matzehuels/trailblazer/pkg/io"
)

// Memory is an in-process [NetworkStore].
type Memory struct {
	mu   sync.RWMutex
	docs map[string]document
	now  func() time.Time
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]document), now: time.Now}
}

func (m *Memory) Save(_ context.Context, name string, n netio.Network) error {
	if err := errs.ValidateNetworkName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = newDocument(name, n, m.now())
	return nil
}

func (m *Memory) Load(_ context.Context, name string) (netio.Network, error) {
	if err := errs.ValidateNetworkName(name); err != nil {
		return netio.Network{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[name]
	if !ok {
		return netio.Network{}, notFound(name)
	}
	return doc.Network, nil
}

func (m *Memory) List(context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d.Summary)
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[name]; !ok {
		return notFound(name)
	}
	delete(m.docs, name)
	return nil
}

func (m *Memory) Close(context.Context) error { return nil }

var _ NetworkStore = (*Memory)(nil)
