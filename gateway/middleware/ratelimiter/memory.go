package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]*Record
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string]*Record),
	}
}

func (mb *MemoryBackend) Get(_ context.Context, identifier string) (*Record, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	record, exists := mb.data[identifier]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (mb *MemoryBackend) Set(_ context.Context, identifier string, record *Record, _ time.Duration) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	copied := *record
	mb.data[identifier] = &copied
	return nil
}

func (mb *MemoryBackend) Delete(_ context.Context, identifier string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	delete(mb.data, identifier)
	return nil
}

// List returns copies so callers cannot mutate stored records.
func (mb *MemoryBackend) List(_ context.Context) (map[string]*Record, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	out := make(map[string]*Record, len(mb.data))
	for k, v := range mb.data {
		copied := *v
		out[k] = &copied
	}
	return out, nil
}

func (mb *MemoryBackend) Clear(_ context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.data = make(map[string]*Record)
	return nil
}
