package cache

import (
	"context"
	"sync"
	"time"

	"github.com/TemirB/catalog-orders/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entries interface {
	Get(key string) ([]byte, bool)
	Add(key string, value []byte) bool
	Remove(key string) bool
	Len() int
	Purge()
}

// Memory is a process-local cache of serialized values. It does not expire
// entries. With size <= 0 they live until deleted or the process ends. A
// positive size caps the cache and lets it push out the least recently used
// entry, which the cache port itself never does.
type Memory struct {
	entries entries
}

func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		return &Memory{entries: &mapEntries{m: make(map[string][]byte)}}, nil
	}
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Memory{entries: c}, nil
}

func (m *Memory) Get(_ context.Context, key domain.Key, dst any) (bool, error) {
	raw, ok := m.entries.Get(key.String())
	if !ok {
		return false, nil
	}
	if err := decode("get", key, raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key domain.Key, value any, _ time.Duration) error {
	raw, err := encode("set", key, value)
	if err != nil {
		return err
	}
	m.entries.Add(key.String(), raw)
	return nil
}

func (m *Memory) Delete(_ context.Context, key domain.Key) error {
	m.entries.Remove(key.String())
	return nil
}

func (m *Memory) Len() int { return m.entries.Len() }

// Reset drops every entry.
func (m *Memory) Reset() { m.entries.Purge() }

type mapEntries struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func (e *mapEntries) Get(key string) ([]byte, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.m[key]
	return v, ok
}

func (e *mapEntries) Add(key string, value []byte) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m[key] = value
	return false
}

func (e *mapEntries) Remove(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.m[key]
	delete(e.m, key)
	return ok
}

func (e *mapEntries) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.m)
}

func (e *mapEntries) Purge() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.m)
}
