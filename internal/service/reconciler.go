package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/directory"
	"github.com/xxxsen/notetoc/internal/notestore"
	appErr "github.com/xxxsen/notetoc/internal/pkg/errors"
	"github.com/xxxsen/notetoc/internal/registry"
)

const DefaultTocTitle = "Table of Contents"

type TocAction string

const (
	TocCreated TocAction = "created"
	TocUpdated TocAction = "updated"
)

type TocReconciler struct {
	title     string
	registry  *registry.TocRegistry
	serialize bool
}

// NewTocReconciler builds a reconciler writing to reg. With serialize set,
// reconciliations of the same notebook run one at a time; otherwise two
// concurrent runs may both create a note and the registry keeps the later.
func NewTocReconciler(title string, reg *registry.TocRegistry, serialize bool) *TocReconciler {
	if title == "" {
		title = DefaultTocTitle
	}
	return &TocReconciler{title: title, registry: reg, serialize: serialize}
}

// Reconcile writes the table of contents for notebookGUID, updating the
// note the registry points at when it still exists and creating a new one
// otherwise. At most one create or update reaches the store, and the
// registry only changes after it succeeds.
func (r *TocReconciler) Reconcile(ctx context.Context, store notestore.Store, authToken string, user directory.UserRecord, notebookGUID string, notes []notestore.NoteMetadata) (*notestore.Note, TocAction, error) {
	if len(notes) == 0 {
		return nil, "", appErr.ErrNoTaggedNotes
	}
	if r.serialize {
		unlock, err := r.registry.Lock(ctx, notebookGUID)
		if err != nil {
			return nil, "", err
		}
		defer unlock()
	}
	logger := logutil.GetLogger(ctx).With(zap.String("notebook_guid", notebookGUID))
	content := RenderTocContent(user.UserID, user.Shard, notes)

	if tocGUID, ok := r.registry.Get(notebookGUID); ok {
		existing, err := store.GetNote(ctx, authToken, tocGUID, false, false, false, false).Await(ctx)
		switch {
		case err == nil && existing != nil && !existing.IsDeleted():
			existing.Content = content
			updated, err := store.UpdateNote(ctx, authToken, existing).Await(ctx)
			if err != nil {
				return nil, "", err
			}
			if updated == nil {
				updated = existing
			}
			r.remember(notebookGUID, updated)
			logger.Info("toc note updated", zap.String("note_guid", updated.GUID), zap.Int("links", len(notes)))
			return updated, TocUpdated, nil
		case err == nil:
			logger.Info("toc note was deleted, recreating", zap.String("stale_guid", tocGUID))
		case notestore.IsNoteGUIDNotFound(err):
			logger.Info("toc note not found, recreating", zap.String("stale_guid", tocGUID))
		default:
			return nil, "", err
		}
	}

	draft := &notestore.Note{
		NoteMetadata: notestore.NoteMetadata{Title: r.title, NotebookGUID: notebookGUID},
		Content:      content,
	}
	created, err := store.CreateNote(ctx, authToken, draft).Await(ctx)
	if err != nil {
		return nil, "", err
	}
	if created == nil {
		return nil, "", appErr.ErrInternal
	}
	r.remember(notebookGUID, created)
	logger.Info("toc note created", zap.String("note_guid", created.GUID), zap.Int("links", len(notes)))
	return created, TocCreated, nil
}

// remember keys the entry by the notebook the note reports, which wins over
// the requested one if they differ.
func (r *TocReconciler) remember(notebookGUID string, note *notestore.Note) {
	key := note.NotebookGUID
	if key == "" {
		key = notebookGUID
	}
	r.registry.Set(key, note.GUID)
}
