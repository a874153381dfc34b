package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/notestore"
)

const defaultPageSize = 100

type NoteAggregator struct {
	pageSize int
}

func NewNoteAggregator(pageSize int) *NoteAggregator {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &NoteAggregator{pageSize: pageSize}
}

// FindAllNotes pages through the metadata search until a page comes back
// empty or the reported total is reached. The total is only a hint. The
// next offset is always the number of notes already collected. Any error
// discards what was fetched so far.
func (a *NoteAggregator) FindAllNotes(ctx context.Context, store notestore.Store, authToken string, filter notestore.NoteFilter, spec notestore.ResultSpec) ([]notestore.NoteMetadata, error) {
	var notes []notestore.NoteMetadata
	for {
		page, err := store.FindNotesMetadata(ctx, authToken, filter, len(notes), a.pageSize, spec).Await(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil || len(page.Notes) == 0 {
			break
		}
		notes = append(notes, page.Notes...)
		if len(notes) >= page.TotalNotes {
			break
		}
	}
	logutil.GetLogger(ctx).Debug("notes aggregated",
		zap.String("notebook_guid", filter.NotebookGUID),
		zap.Int("count", len(notes)),
	)
	return notes, nil
}
