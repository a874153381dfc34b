package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/xxxsen/notetoc/internal/model"
)

// WebhookHistory is an append-only in-memory log of handled webhook events.
type WebhookHistory struct {
	mu      sync.RWMutex
	entries []model.WebhookHistoryEntry
}

func NewWebhookHistory() *WebhookHistory {
	return &WebhookHistory{}
}

func (h *WebhookHistory) Append(entry model.WebhookHistoryEntry) string {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()
	return entry.ID
}

// List returns entries oldest first.
func (h *WebhookHistory) List() []model.WebhookHistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.WebhookHistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *WebhookHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Trim drops the oldest entries beyond max and returns how many went.
func (h *WebhookHistory) Trim(max int) int {
	if max < 0 {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.entries) - max
	if n <= 0 {
		return 0
	}
	kept := make([]model.WebhookHistoryEntry, max)
	copy(kept, h.entries[n:])
	h.entries = kept
	return n
}
