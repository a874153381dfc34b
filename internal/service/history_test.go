package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/notetoc/internal/model"
)

func TestWebhookHistory_AppendAndTrim(t *testing.T) {
	h := NewWebhookHistory()
	for _, guid := range []string{"a", "b", "c", "d"} {
		id := h.Append(model.WebhookHistoryEntry{Event: model.WebhookEvent{NoteGUID: guid}})
		require.NotEmpty(t, id)
	}
	require.Equal(t, 4, h.Len())

	require.Equal(t, 2, h.Trim(2))
	entries := h.List()
	require.Len(t, entries, 2)
	require.Equal(t, "c", entries[0].Event.NoteGUID)
	require.Equal(t, "d", entries[1].Event.NoteGUID)

	require.Equal(t, 0, h.Trim(5))
	require.Equal(t, 0, h.Trim(-1))
}
