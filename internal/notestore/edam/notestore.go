package edam

import (
	"context"
	"errors"

	"github.com/apache/thrift/lib/go/thrift"
)

const (
	MethodFindNotesMetadata = "findNotesMetadata"
	MethodGetNote           = "getNote"
	MethodCreateNote        = "createNote"
	MethodUpdateNote        = "updateNote"
	MethodGetNoteTagNames   = "getNoteTagNames"
)

type FindNotesMetadataArgs struct {
	AuthenticationToken string
	Filter              *NoteFilter
	Offset              int32
	MaxNotes            int32
	ResultSpec          *NotesMetadataResultSpec
}

func (a *FindNotesMetadataArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "findNotesMetadata_args")
	w.str("authenticationToken", 1, a.AuthenticationToken)
	w.optStruct("filter", 2, a.Filter, a.Filter != nil)
	w.i32("offset", 3, a.Offset)
	w.i32("maxNotes", 4, a.MaxNotes)
	w.optStruct("resultSpec", 5, a.ResultSpec, a.ResultSpec != nil)
	return w.close()
}

func (a *FindNotesMetadataArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && t == thrift.STRING:
			a.AuthenticationToken, err = p.ReadString(ctx)
		case id == 2 && t == thrift.STRUCT:
			a.Filter = &NoteFilter{}
			err = a.Filter.Read(ctx, p)
		case id == 3 && t == thrift.I32:
			a.Offset, err = p.ReadI32(ctx)
		case id == 4 && t == thrift.I32:
			a.MaxNotes, err = p.ReadI32(ctx)
		case id == 5 && t == thrift.STRUCT:
			a.ResultSpec = &NotesMetadataResultSpec{}
			err = a.ResultSpec.Read(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

type GetNoteArgs struct {
	AuthenticationToken        string
	GUID                       string
	WithContent                bool
	WithResourcesData          bool
	WithResourcesRecognition   bool
	WithResourcesAlternateData bool
}

func (a *GetNoteArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "getNote_args")
	w.str("authenticationToken", 1, a.AuthenticationToken)
	w.str("guid", 2, a.GUID)
	w.boolean("withContent", 3, a.WithContent)
	w.boolean("withResourcesData", 4, a.WithResourcesData)
	w.boolean("withResourcesRecognition", 5, a.WithResourcesRecognition)
	w.boolean("withResourcesAlternateData", 6, a.WithResourcesAlternateData)
	return w.close()
}

func (a *GetNoteArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && t == thrift.STRING:
			a.AuthenticationToken, err = p.ReadString(ctx)
		case id == 2 && t == thrift.STRING:
			a.GUID, err = p.ReadString(ctx)
		case id == 3 && t == thrift.BOOL:
			a.WithContent, err = p.ReadBool(ctx)
		case id == 4 && t == thrift.BOOL:
			a.WithResourcesData, err = p.ReadBool(ctx)
		case id == 5 && t == thrift.BOOL:
			a.WithResourcesRecognition, err = p.ReadBool(ctx)
		case id == 6 && t == thrift.BOOL:
			a.WithResourcesAlternateData, err = p.ReadBool(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

// NoteArgs is the argument list of both createNote and updateNote.
type NoteArgs struct {
	AuthenticationToken string
	Note                *Note
}

func (a *NoteArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "note_args")
	w.str("authenticationToken", 1, a.AuthenticationToken)
	w.optStruct("note", 2, a.Note, a.Note != nil)
	return w.close()
}

func (a *NoteArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && t == thrift.STRING:
			a.AuthenticationToken, err = p.ReadString(ctx)
		case id == 2 && t == thrift.STRUCT:
			a.Note = &Note{}
			err = a.Note.Read(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

type GUIDArgs struct {
	AuthenticationToken string
	GUID                string
}

func (a *GUIDArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "guid_args")
	w.str("authenticationToken", 1, a.AuthenticationToken)
	w.str("guid", 2, a.GUID)
	return w.close()
}

func (a *GUIDArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		if t != thrift.STRING {
			return false, nil
		}
		var err error
		switch id {
		case 1:
			a.AuthenticationToken, err = p.ReadString(ctx)
		case 2:
			a.GUID, err = p.ReadString(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

// Result is the reply of one call: the value in field 0 or one of the three
// declared exceptions.
type Result[T any] struct {
	Success           T
	HasSuccess        bool
	UserException     *UserException
	SystemException   *SystemException
	NotFoundException *NotFoundException

	valueType  thrift.TType
	readValue  func(context.Context, thrift.TProtocol) (T, error)
	writeValue func(context.Context, thrift.TProtocol, T) error
}

func NewNoteResult() *Result[*Note] {
	return &Result[*Note]{
		valueType: thrift.STRUCT,
		readValue: func(ctx context.Context, p thrift.TProtocol) (*Note, error) {
			n := &Note{}
			return n, n.Read(ctx, p)
		},
		writeValue: func(ctx context.Context, p thrift.TProtocol, n *Note) error {
			return n.Write(ctx, p)
		},
	}
}

func NewNotesMetadataListResult() *Result[*NotesMetadataList] {
	return &Result[*NotesMetadataList]{
		valueType: thrift.STRUCT,
		readValue: func(ctx context.Context, p thrift.TProtocol) (*NotesMetadataList, error) {
			l := &NotesMetadataList{}
			return l, l.Read(ctx, p)
		},
		writeValue: func(ctx context.Context, p thrift.TProtocol, l *NotesMetadataList) error {
			return l.Write(ctx, p)
		},
	}
}

func NewStringsResult() *Result[[]string] {
	return &Result[[]string]{
		valueType:  thrift.LIST,
		readValue:  readStrings,
		writeValue: writeStrings,
	}
}

// Set records a handler outcome. Errors that are not one of the declared
// exceptions are handed back to the caller.
func (r *Result[T]) Set(v T, err error) error {
	var ue *UserException
	var se *SystemException
	var ne *NotFoundException
	switch {
	case err == nil:
		r.Success, r.HasSuccess = v, true
	case errors.As(err, &ue):
		r.UserException = ue
	case errors.As(err, &se):
		r.SystemException = se
	case errors.As(err, &ne):
		r.NotFoundException = ne
	default:
		return err
	}
	return nil
}

// Err returns the declared exception carried by the reply, if any.
func (r *Result[T]) Err() error {
	switch {
	case r.UserException != nil:
		return r.UserException
	case r.SystemException != nil:
		return r.SystemException
	case r.NotFoundException != nil:
		return r.NotFoundException
	}
	return nil
}

func (r *Result[T]) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "result")
	switch {
	case r.UserException != nil:
		w.optStruct("userException", 1, r.UserException, true)
	case r.SystemException != nil:
		w.optStruct("systemException", 2, r.SystemException, true)
	case r.NotFoundException != nil:
		w.optStruct("notFoundException", 3, r.NotFoundException, true)
	case r.HasSuccess:
		w.field("success", r.valueType, 0, func() error { return r.writeValue(ctx, p, r.Success) })
	}
	return w.close()
}

func (r *Result[T]) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		switch {
		case id == 0 && t == r.valueType:
			v, err := r.readValue(ctx, p)
			if err != nil {
				return true, err
			}
			r.Success, r.HasSuccess = v, true
			return true, nil
		case id == 1 && t == thrift.STRUCT:
			r.UserException = &UserException{}
			return true, r.UserException.Read(ctx, p)
		case id == 2 && t == thrift.STRUCT:
			r.SystemException = &SystemException{}
			return true, r.SystemException.Read(ctx, p)
		case id == 3 && t == thrift.STRUCT:
			r.NotFoundException = &NotFoundException{}
			return true, r.NotFoundException.Read(ctx, p)
		}
		return false, nil
	})
}

// NoteStoreClient issues NoteStore calls over any thrift.TClient.
type NoteStoreClient struct {
	c thrift.TClient
}

func NewNoteStoreClient(c thrift.TClient) *NoteStoreClient {
	return &NoteStoreClient{c: c}
}

func call[T any](ctx context.Context, c thrift.TClient, method string, args thrift.TStruct, res *Result[T]) (T, error) {
	var zero T
	if _, err := c.Call(ctx, method, args, res); err != nil {
		return zero, err
	}
	if err := res.Err(); err != nil {
		return zero, err
	}
	if !res.HasSuccess {
		return zero, thrift.NewTApplicationException(thrift.MISSING_RESULT, method+" failed: unknown result")
	}
	return res.Success, nil
}

func (c *NoteStoreClient) FindNotesMetadata(ctx context.Context, authToken string, filter *NoteFilter, offset, maxNotes int32, spec *NotesMetadataResultSpec) (*NotesMetadataList, error) {
	args := &FindNotesMetadataArgs{
		AuthenticationToken: authToken,
		Filter:              filter,
		Offset:              offset,
		MaxNotes:            maxNotes,
		ResultSpec:          spec,
	}
	return call(ctx, c.c, MethodFindNotesMetadata, args, NewNotesMetadataListResult())
}

func (c *NoteStoreClient) GetNote(ctx context.Context, authToken, guid string, withContent, withResourcesData, withResourcesRecognition, withResourcesAlternateData bool) (*Note, error) {
	args := &GetNoteArgs{
		AuthenticationToken:        authToken,
		GUID:                       guid,
		WithContent:                withContent,
		WithResourcesData:          withResourcesData,
		WithResourcesRecognition:   withResourcesRecognition,
		WithResourcesAlternateData: withResourcesAlternateData,
	}
	return call(ctx, c.c, MethodGetNote, args, NewNoteResult())
}

func (c *NoteStoreClient) CreateNote(ctx context.Context, authToken string, note *Note) (*Note, error) {
	return call(ctx, c.c, MethodCreateNote, &NoteArgs{AuthenticationToken: authToken, Note: note}, NewNoteResult())
}

func (c *NoteStoreClient) UpdateNote(ctx context.Context, authToken string, note *Note) (*Note, error) {
	return call(ctx, c.c, MethodUpdateNote, &NoteArgs{AuthenticationToken: authToken, Note: note}, NewNoteResult())
}

func (c *NoteStoreClient) GetNoteTagNames(ctx context.Context, authToken, guid string) ([]string, error) {
	return call(ctx, c.c, MethodGetNoteTagNames, &GUIDArgs{AuthenticationToken: authToken, GUID: guid}, NewStringsResult())
}
