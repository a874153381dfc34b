package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/xxxsen/notetoc/internal/async"
	"github.com/xxxsen/notetoc/internal/notestore"
)

type fakeStore struct {
	mu sync.Mutex

	find     func(offset, maxNotes int) (*notestore.NotesMetadataList, error)
	tagNames []string
	tagErr   error
	getErr    error
	createErr error
	updateErr error
	notes     map[string]*notestore.Note

	findOffsets []int
	getCalls    []string
	created     []*notestore.Note
	updated     []*notestore.Note
	lastFilter  notestore.NoteFilter
	createCtx   []error
	seq         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{notes: make(map[string]*notestore.Note)}
}

// pagedFind serves all in slices of at most pageSize, reporting total.
func pagedFind(all []notestore.NoteMetadata, total int) func(offset, maxNotes int) (*notestore.NotesMetadataList, error) {
	return func(offset, maxNotes int) (*notestore.NotesMetadataList, error) {
		end := offset + maxNotes
		if end > len(all) {
			end = len(all)
		}
		var page []notestore.NoteMetadata
		if offset < end {
			page = all[offset:end]
		}
		return &notestore.NotesMetadataList{StartIndex: offset, TotalNotes: total, Notes: page}, nil
	}
}

func makeNotes(n int) []notestore.NoteMetadata {
	out := make([]notestore.NoteMetadata, n)
	for i := range out {
		out[i] = notestore.NoteMetadata{GUID: fmt.Sprintf("n%d", i), Title: fmt.Sprintf("Note %d", i), NotebookGUID: "nb1"}
	}
	return out
}

func (f *fakeStore) FindNotesMetadata(ctx context.Context, authToken string, filter notestore.NoteFilter, offset, maxNotes int, spec notestore.ResultSpec) *async.Future[*notestore.NotesMetadataList] {
	f.mu.Lock()
	f.findOffsets = append(f.findOffsets, offset)
	f.lastFilter = filter
	find := f.find
	f.mu.Unlock()
	if find == nil {
		return async.Resolved(&notestore.NotesMetadataList{}, nil)
	}
	page, err := find(offset, maxNotes)
	return async.Resolved(page, err)
}

func (f *fakeStore) GetNote(ctx context.Context, authToken, guid string, withContent, withResources, withRecognition, withAlternateData bool) *async.Future[*notestore.Note] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, guid)
	if f.getErr != nil {
		return async.Resolved[*notestore.Note](nil, f.getErr)
	}
	note, ok := f.notes[guid]
	if !ok {
		return async.Resolved[*notestore.Note](nil, &notestore.Error{Kind: notestore.KindNotFound, Identifier: notestore.IdentifierNoteGUID, Key: guid})
	}
	cp := *note
	return async.Resolved(&cp, nil)
}

func (f *fakeStore) CreateNote(ctx context.Context, authToken string, note *notestore.Note) *async.Future[*notestore.Note] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCtx = append(f.createCtx, ctx.Err())
	if f.createErr != nil {
		return async.Resolved[*notestore.Note](nil, f.createErr)
	}
	f.seq++
	cp := *note
	cp.GUID = fmt.Sprintf("toc-%d", f.seq)
	f.created = append(f.created, &cp)
	f.notes[cp.GUID] = &cp
	out := cp
	return async.Resolved(&out, nil)
}

func (f *fakeStore) UpdateNote(ctx context.Context, authToken string, note *notestore.Note) *async.Future[*notestore.Note] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return async.Resolved[*notestore.Note](nil, f.updateErr)
	}
	cp := *note
	f.updated = append(f.updated, &cp)
	f.notes[cp.GUID] = &cp
	out := cp
	return async.Resolved(&out, nil)
}

func (f *fakeStore) GetNoteTagNames(ctx context.Context, authToken, guid string) *async.Future[[]string] {
	if f.tagErr != nil {
		return async.Resolved[[]string](nil, f.tagErr)
	}
	return async.Resolved(f.tagNames, nil)
}

type fakeStoreProvider struct {
	store notestore.Store
	err   error
}

func (p fakeStoreProvider) ForUser(noteStoreURL, shard string) (notestore.Store, error) {
	return p.store, p.err
}
