package notestore

import (
	"context"

	"github.com/xxxsen/notetoc/internal/async"
)

// CallbackStore is the raw note-store capability. Every method reports its
// outcome through the trailing callback, exactly once.
type CallbackStore interface {
	FindNotesMetadata(ctx context.Context, authToken string, filter NoteFilter, offset, maxNotes int, spec ResultSpec, cb async.Callback[*NotesMetadataList])
	GetNote(ctx context.Context, authToken, guid string, withContent, withResources, withRecognition, withAlternateData bool, cb async.Callback[*Note])
	CreateNote(ctx context.Context, authToken string, note *Note, cb async.Callback[*Note])
	UpdateNote(ctx context.Context, authToken string, note *Note, cb async.Callback[*Note])
	GetNoteTagNames(ctx context.Context, authToken, guid string, cb async.Callback[[]string])
}

// Store is CallbackStore with every method returning a future instead of
// taking a callback.
type Store interface {
	FindNotesMetadata(ctx context.Context, authToken string, filter NoteFilter, offset, maxNotes int, spec ResultSpec) *async.Future[*NotesMetadataList]
	GetNote(ctx context.Context, authToken, guid string, withContent, withResources, withRecognition, withAlternateData bool) *async.Future[*Note]
	CreateNote(ctx context.Context, authToken string, note *Note) *async.Future[*Note]
	UpdateNote(ctx context.Context, authToken string, note *Note) *async.Future[*Note]
	GetNoteTagNames(ctx context.Context, authToken, guid string) *async.Future[[]string]
}

type promiseStore struct {
	raw             CallbackStore
	createNote      func(context.Context, string, *Note) *async.Future[*Note]
	updateNote      func(context.Context, string, *Note) *async.Future[*Note]
	getNoteTagNames func(context.Context, string, string) *async.Future[[]string]
}

// Promisify adapts raw method by method. Calls run against raw itself, so
// any per-client binding it carries is kept.
func Promisify(raw CallbackStore) Store {
	return &promiseStore{
		raw:             raw,
		createNote:      async.Wrap3(raw.CreateNote),
		updateNote:      async.Wrap3(raw.UpdateNote),
		getNoteTagNames: async.Wrap3(raw.GetNoteTagNames),
	}
}

func (s *promiseStore) FindNotesMetadata(ctx context.Context, authToken string, filter NoteFilter, offset, maxNotes int, spec ResultSpec) *async.Future[*NotesMetadataList] {
	return async.Call(func(cb async.Callback[*NotesMetadataList]) {
		s.raw.FindNotesMetadata(ctx, authToken, filter, offset, maxNotes, spec, cb)
	})
}

func (s *promiseStore) GetNote(ctx context.Context, authToken, guid string, withContent, withResources, withRecognition, withAlternateData bool) *async.Future[*Note] {
	return async.Call(func(cb async.Callback[*Note]) {
		s.raw.GetNote(ctx, authToken, guid, withContent, withResources, withRecognition, withAlternateData, cb)
	})
}

func (s *promiseStore) CreateNote(ctx context.Context, authToken string, note *Note) *async.Future[*Note] {
	return s.createNote(ctx, authToken, note)
}

func (s *promiseStore) UpdateNote(ctx context.Context, authToken string, note *Note) *async.Future[*Note] {
	return s.updateNote(ctx, authToken, note)
}

func (s *promiseStore) GetNoteTagNames(ctx context.Context, authToken, guid string) *async.Future[[]string] {
	return s.getNoteTagNames(ctx, authToken, guid)
}
