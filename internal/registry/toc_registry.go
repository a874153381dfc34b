// Package registry remembers which note was last written as the table of
// contents of each notebook. Entries are pointers only; the note store stays
// authoritative and an entry may name a note that no longer exists.
package registry

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type TocRegistry struct {
	mu      sync.RWMutex
	entries map[string]string

	locksMu sync.Mutex
	locks   map[string]*semaphore.Weighted
}

func NewTocRegistry() *TocRegistry {
	return &TocRegistry{
		entries: make(map[string]string),
		locks:   make(map[string]*semaphore.Weighted),
	}
}

func (r *TocRegistry) Get(notebookGUID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	guid, ok := r.entries[notebookGUID]
	return guid, ok
}

func (r *TocRegistry) Set(notebookGUID, noteGUID string) {
	r.mu.Lock()
	r.entries[notebookGUID] = noteGUID
	r.mu.Unlock()
}

// Lock serializes work on one notebook. The returned func releases it.
func (r *TocRegistry) Lock(ctx context.Context, notebookGUID string) (func(), error) {
	r.locksMu.Lock()
	sem, ok := r.locks[notebookGUID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		r.locks[notebookGUID] = sem
	}
	r.locksMu.Unlock()
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { sem.Release(1) }, nil
}
