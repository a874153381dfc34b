package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/notetoc/internal/directory"
	"github.com/xxxsen/notetoc/internal/model"
	"github.com/xxxsen/notetoc/internal/notestore"
	appErr "github.com/xxxsen/notetoc/internal/pkg/errors"
	"github.com/xxxsen/notetoc/internal/registry"
)

type dispatcherFixture struct {
	store      *fakeStore
	registry   *registry.TocRegistry
	history    *WebhookHistory
	dispatcher *WebhookDispatcher
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()
	users := directory.New()
	users.AddUser("u1", "tok", "sec", time.Time{})
	users.SetShard("u1", "s1")
	store := newFakeStore()
	reg := registry.NewTocRegistry()
	history := NewWebhookHistory()
	d := NewWebhookDispatcher(users, fakeStoreProvider{store: store}, NewNoteAggregator(100), NewTocReconciler("", reg, true), history, "")
	return &dispatcherFixture{store: store, registry: reg, history: history, dispatcher: d}
}

func updateEvent() model.WebhookEvent {
	return model.WebhookEvent{UserID: "u1", NoteGUID: "n1", NotebookGUID: "nb1", Reason: model.ReasonUpdate}
}

func TestDispatch_CreatesToc(t *testing.T) {
	fx := newDispatcherFixture(t)
	fx.store.tagNames = []string{"toc"}
	fx.store.find = pagedFind([]notestore.NoteMetadata{{GUID: "n1", Title: "T", NotebookGUID: "nb1"}}, 1)

	out, err := fx.dispatcher.Dispatch(context.Background(), updateEvent())
	require.NoError(t, err)
	require.Equal(t, TocCreated, out.Action)
	require.Equal(t, "nb1", out.NotebookGUID)
	require.Equal(t, 1, out.TaggedNotes)

	require.Len(t, fx.store.created, 1)
	require.Equal(t, DefaultTocTitle, fx.store.created[0].Title)
	require.Contains(t, fx.store.created[0].Content, NoteLink("u1", "s1", "n1"))
	guid, ok := fx.registry.Get("nb1")
	require.True(t, ok)
	require.Equal(t, out.NoteGUID, guid)

	require.Equal(t, "nb1", fx.store.lastFilter.NotebookGUID)
	require.Equal(t, `tag:"toc"`, fx.store.lastFilter.Words)
	require.Equal(t, notestore.SortOrderUpdated, fx.store.lastFilter.Order)
	require.True(t, fx.store.lastFilter.Ascending)

	entries := fx.history.List()
	require.Len(t, entries, 1)
	require.Equal(t, model.WebhookDone, entries[0].Status)
}

func TestDispatch_UpdatesExistingToc(t *testing.T) {
	fx := newDispatcherFixture(t)
	fx.store.tagNames = []string{"toc"}
	fx.store.find = pagedFind([]notestore.NoteMetadata{{GUID: "n1", Title: "T", NotebookGUID: "nb1"}}, 1)
	fx.store.notes["old"] = &notestore.Note{NoteMetadata: notestore.NoteMetadata{GUID: "old", NotebookGUID: "nb1"}}
	fx.registry.Set("nb1", "old")

	out, err := fx.dispatcher.Dispatch(context.Background(), updateEvent())
	require.NoError(t, err)
	require.Equal(t, TocUpdated, out.Action)
	require.Equal(t, "old", out.NoteGUID)
	require.Len(t, fx.store.updated, 1)
	require.Empty(t, fx.store.created)
}

func TestDispatch_TagMatchIsCaseInsensitive(t *testing.T) {
	fx := newDispatcherFixture(t)
	fx.store.tagNames = []string{"work", "ToC"}
	fx.store.find = pagedFind(makeNotes(1), 1)

	_, err := fx.dispatcher.Dispatch(context.Background(), model.WebhookEvent{UserID: "u1", NoteGUID: "n1", NotebookGUID: "nb1", Reason: model.ReasonBusinessUpdate})
	require.NoError(t, err)
	require.Len(t, fx.store.created, 1)
}

func TestDispatch_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		event  model.WebhookEvent
		tags   []string
		want   error
		status model.WebhookStatus
	}{
		{name: "missing guid", event: model.WebhookEvent{UserID: "u1", NotebookGUID: "nb1", Reason: model.ReasonUpdate}, want: appErr.ErrIgnored, status: model.WebhookIgnored},
		{name: "missing notebook", event: model.WebhookEvent{UserID: "u1", NoteGUID: "n1", Reason: model.ReasonUpdate}, want: appErr.ErrIgnored, status: model.WebhookIgnored},
		{name: "create reason", event: model.WebhookEvent{UserID: "u1", NoteGUID: "n1", NotebookGUID: "nb1", Reason: model.ReasonCreate}, want: appErr.ErrIgnored, status: model.WebhookIgnored},
		{name: "notebook update reason", event: model.WebhookEvent{UserID: "u1", NoteGUID: "n1", NotebookGUID: "nb1", Reason: model.ReasonNotebookUpdate}, want: appErr.ErrIgnored, status: model.WebhookIgnored},
		{name: "unknown user", event: model.WebhookEvent{UserID: "u2", NoteGUID: "n1", NotebookGUID: "nb1", Reason: model.ReasonUpdate}, want: appErr.ErrUnknownUser, status: model.WebhookUnknownUser},
		{name: "tag absent", event: updateEvent(), tags: []string{"work"}, want: appErr.ErrTagNotPresent, status: model.WebhookTagNotPresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newDispatcherFixture(t)
			fx.store.tagNames = tt.tags
			_, err := fx.dispatcher.Dispatch(context.Background(), tt.event)
			require.ErrorIs(t, err, tt.want)
			require.Empty(t, fx.store.findOffsets)
			require.Empty(t, fx.store.created)
			entries := fx.history.List()
			require.Len(t, entries, 1)
			require.Equal(t, tt.status, entries[0].Status)
		})
	}
}

func TestDispatch_NoTaggedNotesIsDistinct(t *testing.T) {
	fx := newDispatcherFixture(t)
	fx.store.tagNames = []string{"toc"}

	_, err := fx.dispatcher.Dispatch(context.Background(), updateEvent())
	require.ErrorIs(t, err, appErr.ErrNoTaggedNotes)
	require.Equal(t, model.WebhookFailed, fx.history.List()[0].Status)
}

func TestDispatch_UpstreamErrorsSurface(t *testing.T) {
	boom := errors.New("tag lookup failed")
	fx := newDispatcherFixture(t)
	fx.store.tagErr = boom
	_, err := fx.dispatcher.Dispatch(context.Background(), updateEvent())
	require.ErrorIs(t, err, boom)

	fx = newDispatcherFixture(t)
	fx.store.tagNames = []string{"toc"}
	fx.store.find = func(offset, maxNotes int) (*notestore.NotesMetadataList, error) {
		return nil, boom
	}
	_, err = fx.dispatcher.Dispatch(context.Background(), updateEvent())
	require.ErrorIs(t, err, boom)
	require.Empty(t, fx.store.created)
}

func TestDispatch_StoreResolutionFailure(t *testing.T) {
	users := directory.New()
	users.AddUser("u1", "tok", "sec", time.Time{})
	boom := errors.New("no store")
	d := NewWebhookDispatcher(users, fakeStoreProvider{err: boom}, NewNoteAggregator(0), NewTocReconciler("", registry.NewTocRegistry(), true), nil, "toc")
	_, err := d.Dispatch(context.Background(), updateEvent())
	require.ErrorIs(t, err, boom)
}

func TestDispatch_RequestCancellationDoesNotAbandonWrites(t *testing.T) {
	fx := newDispatcherFixture(t)
	fx.store.tagNames = []string{"toc"}
	fx.store.find = pagedFind(makeNotes(2), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := fx.dispatcher.Dispatch(ctx, updateEvent())
	require.NoError(t, err)
	require.Equal(t, TocCreated, out.Action)
	require.Equal(t, []error{nil}, fx.store.createCtx)
	guid, ok := fx.registry.Get("nb1")
	require.True(t, ok)
	require.Equal(t, out.NoteGUID, guid)
}

func TestTagQuery(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "toc", want: `tag:"toc"`},
		{name: "a\\b", want: `tag:"a\b"`},
		{name: `say "hi"`, want: `tag:"say hi"`},
		{name: "two words", want: `tag:"two words"`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tagQuery(tt.name), tt.name)
	}
}
