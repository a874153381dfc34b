// Package notestoretest serves the NoteStore Thrift protocol over HTTP for
// tests, in the spirit of net/http/httptest.
package notestoretest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/xxxsen/notetoc/internal/notestore/edam"
)

// Handler answers each method with the matching func. A nil func answers
// with an unknown-method application exception. Errors that are EDAM
// exceptions travel as declared exceptions; any other error becomes an
// internal application exception.
type Handler struct {
	FindNotesMetadata func(args *edam.FindNotesMetadataArgs) (*edam.NotesMetadataList, error)
	GetNote           func(args *edam.GetNoteArgs) (*edam.Note, error)
	CreateNote        func(args *edam.NoteArgs) (*edam.Note, error)
	UpdateNote        func(args *edam.NoteArgs) (*edam.Note, error)
	GetNoteTagNames   func(args *edam.GUIDArgs) ([]string, error)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in := thrift.NewTMemoryBuffer()
	if _, err := in.Write(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	iprot := thrift.NewTBinaryProtocolConf(in, &thrift.TConfiguration{})
	name, _, seq, err := iprot.ReadMessageBegin(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reply, err := h.dispatch(ctx, name, iprot)
	if err == nil {
		err = iprot.ReadMessageEnd(ctx)
	}

	out := thrift.NewTMemoryBuffer()
	oprot := thrift.NewTBinaryProtocolConf(out, &thrift.TConfiguration{})
	if err != nil {
		var exc thrift.TApplicationException
		if !errors.As(err, &exc) {
			exc = thrift.NewTApplicationException(thrift.INTERNAL_ERROR, err.Error())
		}
		err = oprot.WriteMessageBegin(ctx, name, thrift.EXCEPTION, seq)
		if err == nil {
			err = exc.Write(ctx, oprot)
		}
	} else {
		err = oprot.WriteMessageBegin(ctx, name, thrift.REPLY, seq)
		if err == nil {
			err = reply.Write(ctx, oprot)
		}
	}
	if err == nil {
		err = oprot.WriteMessageEnd(ctx)
	}
	if err == nil {
		err = oprot.Flush(ctx)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-thrift")
	_, _ = w.Write(out.Bytes())
}

func (h *Handler) dispatch(ctx context.Context, name string, p thrift.TProtocol) (thrift.TStruct, error) {
	switch name {
	case edam.MethodFindNotesMetadata:
		args := &edam.FindNotesMetadataArgs{}
		if err := args.Read(ctx, p); err != nil {
			return nil, err
		}
		if h.FindNotesMetadata != nil {
			res := edam.NewNotesMetadataListResult()
			return res, res.Set(h.FindNotesMetadata(args))
		}
	case edam.MethodGetNote:
		args := &edam.GetNoteArgs{}
		if err := args.Read(ctx, p); err != nil {
			return nil, err
		}
		if h.GetNote != nil {
			res := edam.NewNoteResult()
			return res, res.Set(h.GetNote(args))
		}
	case edam.MethodCreateNote, edam.MethodUpdateNote:
		args := &edam.NoteArgs{}
		if err := args.Read(ctx, p); err != nil {
			return nil, err
		}
		fn := h.CreateNote
		if name == edam.MethodUpdateNote {
			fn = h.UpdateNote
		}
		if fn != nil {
			res := edam.NewNoteResult()
			return res, res.Set(fn(args))
		}
	case edam.MethodGetNoteTagNames:
		args := &edam.GUIDArgs{}
		if err := args.Read(ctx, p); err != nil {
			return nil, err
		}
		if h.GetNoteTagNames != nil {
			res := edam.NewStringsResult()
			return res, res.Set(h.GetNoteTagNames(args))
		}
	}
	return nil, thrift.NewTApplicationException(thrift.UNKNOWN_METHOD, "unknown method "+name)
}
