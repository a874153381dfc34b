package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/directory"
	"github.com/xxxsen/notetoc/internal/model"
	"github.com/xxxsen/notetoc/internal/notestore"
	appErr "github.com/xxxsen/notetoc/internal/pkg/errors"
)

const DefaultTagName = "toc"

// StoreProvider resolves the note store of one user.
type StoreProvider interface {
	ForUser(noteStoreURL, shard string) (notestore.Store, error)
}

type Outcome struct {
	NoteGUID     string    `json:"note_guid"`
	NoteTitle    string    `json:"note_title"`
	NotebookGUID string    `json:"notebook_guid"`
	Action       TocAction `json:"action"`
	TaggedNotes  int       `json:"tagged_notes"`
}

type WebhookDispatcher struct {
	users      *directory.Directory
	stores     StoreProvider
	aggregator *NoteAggregator
	reconciler *TocReconciler
	history    *WebhookHistory
	tagName    string
}

func NewWebhookDispatcher(users *directory.Directory, stores StoreProvider, aggregator *NoteAggregator, reconciler *TocReconciler, history *WebhookHistory, tagName string) *WebhookDispatcher {
	if tagName == "" {
		tagName = DefaultTagName
	}
	return &WebhookDispatcher{
		users:      users,
		stores:     stores,
		aggregator: aggregator,
		reconciler: reconciler,
		history:    history,
		tagName:    tagName,
	}
}

// Dispatch runs one event to a terminal state. Nothing is retried. The
// upstream chain is detached from ctx cancellation: a note store write that
// was sent is always awaited so the registry learns about it.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, ev model.WebhookEvent) (*Outcome, error) {
	received := time.Now()
	out, err := d.dispatch(context.WithoutCancel(ctx), ev)
	if d.history != nil {
		entry := model.WebhookHistoryEntry{
			Event:      ev,
			ReceivedAt: received,
			FinishedAt: time.Now(),
			Status:     statusOf(err),
		}
		if err != nil {
			entry.Message = err.Error()
		} else {
			entry.Message = fmt.Sprintf("%s %s", out.Action, out.NoteGUID)
		}
		d.history.Append(entry)
	}
	return out, err
}

func (d *WebhookDispatcher) dispatch(ctx context.Context, ev model.WebhookEvent) (*Outcome, error) {
	logger := logutil.GetLogger(ctx).With(
		zap.String("reason", ev.Reason),
		zap.String("user_id", ev.UserID),
		zap.String("note_guid", ev.NoteGUID),
		zap.String("notebook_guid", ev.NotebookGUID),
	)
	if !ev.Complete() || !ev.Triggers() {
		logger.Debug("webhook ignored")
		return nil, appErr.ErrIgnored
	}
	user, ok := d.users.Usable(ev.UserID)
	if !ok {
		logger.Warn("webhook for unknown user")
		return nil, appErr.ErrUnknownUser
	}
	store, err := d.stores.ForUser(user.NoteStoreURL, user.Shard)
	if err != nil {
		return nil, fmt.Errorf("resolve note store: %w", err)
	}

	tags, err := store.GetNoteTagNames(ctx, user.AccessToken, ev.NoteGUID).Await(ctx)
	if err != nil {
		logger.Error("get note tag names failed", zap.Error(err))
		return nil, err
	}
	if !hasTag(tags, d.tagName) {
		logger.Debug("target tag not on note", zap.Strings("tags", tags))
		return nil, appErr.ErrTagNotPresent
	}

	filter := notestore.NoteFilter{
		NotebookGUID: ev.NotebookGUID,
		Words:        tagQuery(d.tagName),
		Order:        notestore.SortOrderUpdated,
		Ascending:    true,
	}
	spec := notestore.ResultSpec{
		IncludeTitle:        true,
		IncludeNotebookGUID: true,
		IncludeTagGUIDs:     true,
		IncludeUpdated:      true,
	}
	notes, err := d.aggregator.FindAllNotes(ctx, store, user.AccessToken, filter, spec)
	if err != nil {
		logger.Error("aggregate tagged notes failed", zap.Error(err))
		return nil, err
	}
	note, action, err := d.reconciler.Reconcile(ctx, store, user.AccessToken, user, ev.NotebookGUID, notes)
	if err != nil {
		logger.Error("reconcile toc failed", zap.Error(err))
		return nil, err
	}
	notebookGUID := note.NotebookGUID
	if notebookGUID == "" {
		notebookGUID = ev.NotebookGUID
	}
	return &Outcome{
		NoteGUID:     note.GUID,
		NoteTitle:    note.Title,
		NotebookGUID: notebookGUID,
		Action:       action,
		TaggedNotes:  len(notes),
	}, nil
}

// tagQuery builds a search grammar term matching one tag. The grammar has
// no escapes, so quotes cannot be part of the name.
func tagQuery(name string) string {
	return `tag:"` + strings.ReplaceAll(name, `"`, "") + `"`
}

func hasTag(tags []string, target string) bool {
	for _, tag := range tags {
		if strings.EqualFold(strings.TrimSpace(tag), target) {
			return true
		}
	}
	return false
}

func statusOf(err error) model.WebhookStatus {
	switch {
	case err == nil:
		return model.WebhookDone
	case errors.Is(err, appErr.ErrIgnored):
		return model.WebhookIgnored
	case errors.Is(err, appErr.ErrUnknownUser):
		return model.WebhookUnknownUser
	case errors.Is(err, appErr.ErrTagNotPresent):
		return model.WebhookTagNotPresent
	default:
		return model.WebhookFailed
	}
}
