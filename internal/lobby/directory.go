package lobby

import (
	"context"
	"strings"
	"sync"
)

// Directory reserves game identifiers so that no two live sessions share one.
type Directory interface {
	// Reserve claims id. It reports false when id is already taken.
	Reserve(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
}

// MemoryDirectory is the in-process Directory used when no Redis is configured.
type MemoryDirectory struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{ids: make(map[string]struct{})}
}

func (d *MemoryDirectory) Reserve(_ context.Context, id string) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.ids[key]; ok {
		return false, nil
	}
	d.ids[key] = struct{}{}
	return true, nil
}

func (d *MemoryDirectory) Release(_ context.Context, id string) error {
	d.mu.Lock()
	delete(d.ids, strings.ToLower(strings.TrimSpace(id)))
	d.mu.Unlock()
	return nil
}

func (d *MemoryDirectory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.ids)
}
