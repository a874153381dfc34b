// Package edam carries the subset of the EDAM NoteStore Thrift service that
// notetoc calls. Field ids follow the published service definition; fields
// notetoc never reads are skipped on decode.
package edam

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

type Note struct {
	GUID         string
	Title        string
	Content      string
	Created      int64
	Updated      int64
	Deleted      int64
	NotebookGUID string
	TagGUIDs     []string
	TagNames     []string
}

func (n *Note) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "Note")
	w.optStr("guid", 1, n.GUID)
	w.optStr("title", 2, n.Title)
	w.optStr("content", 3, n.Content)
	w.optI64("created", 6, n.Created)
	w.optI64("updated", 7, n.Updated)
	w.optI64("deleted", 8, n.Deleted)
	w.optStr("notebookGuid", 11, n.NotebookGUID)
	w.optStrings("tagGuids", 12, n.TagGUIDs)
	w.optStrings("tagNames", 15, n.TagNames)
	return w.close()
}

func (n *Note) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && t == thrift.STRING:
			n.GUID, err = p.ReadString(ctx)
		case id == 2 && t == thrift.STRING:
			n.Title, err = p.ReadString(ctx)
		case id == 3 && t == thrift.STRING:
			n.Content, err = p.ReadString(ctx)
		case id == 6 && t == thrift.I64:
			n.Created, err = p.ReadI64(ctx)
		case id == 7 && t == thrift.I64:
			n.Updated, err = p.ReadI64(ctx)
		case id == 8 && t == thrift.I64:
			n.Deleted, err = p.ReadI64(ctx)
		case id == 11 && t == thrift.STRING:
			n.NotebookGUID, err = p.ReadString(ctx)
		case id == 12 && t == thrift.LIST:
			n.TagGUIDs, err = readStrings(ctx, p)
		case id == 15 && t == thrift.LIST:
			n.TagNames, err = readStrings(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

type NoteMetadata struct {
	GUID         string
	Title        string
	Created      int64
	Updated      int64
	Deleted      int64
	NotebookGUID string
	TagGUIDs     []string
}

func (m *NoteMetadata) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "NoteMetadata")
	w.str("guid", 1, m.GUID)
	w.optStr("title", 2, m.Title)
	w.optI64("created", 6, m.Created)
	w.optI64("updated", 7, m.Updated)
	w.optI64("deleted", 8, m.Deleted)
	w.optStr("notebookGuid", 11, m.NotebookGUID)
	w.optStrings("tagGuids", 12, m.TagGUIDs)
	return w.close()
}

func (m *NoteMetadata) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && t == thrift.STRING:
			m.GUID, err = p.ReadString(ctx)
		case id == 2 && t == thrift.STRING:
			m.Title, err = p.ReadString(ctx)
		case id == 6 && t == thrift.I64:
			m.Created, err = p.ReadI64(ctx)
		case id == 7 && t == thrift.I64:
			m.Updated, err = p.ReadI64(ctx)
		case id == 8 && t == thrift.I64:
			m.Deleted, err = p.ReadI64(ctx)
		case id == 11 && t == thrift.STRING:
			m.NotebookGUID, err = p.ReadString(ctx)
		case id == 12 && t == thrift.LIST:
			m.TagGUIDs, err = readStrings(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

type NoteFilter struct {
	Order        int32
	Ascending    bool
	Words        string
	NotebookGUID string
	TagGUIDs     []string
	Inactive     bool
}

func (f *NoteFilter) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "NoteFilter")
	if f.Order != 0 {
		w.i32("order", 1, f.Order)
	}
	w.boolean("ascending", 2, f.Ascending)
	w.optStr("words", 3, f.Words)
	w.optStr("notebookGuid", 4, f.NotebookGUID)
	w.optStrings("tagGuids", 5, f.TagGUIDs)
	w.optTrue("inactive", 7, f.Inactive)
	return w.close()
}

func (f *NoteFilter) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && t == thrift.I32:
			f.Order, err = p.ReadI32(ctx)
		case id == 2 && t == thrift.BOOL:
			f.Ascending, err = p.ReadBool(ctx)
		case id == 3 && t == thrift.STRING:
			f.Words, err = p.ReadString(ctx)
		case id == 4 && t == thrift.STRING:
			f.NotebookGUID, err = p.ReadString(ctx)
		case id == 5 && t == thrift.LIST:
			f.TagGUIDs, err = readStrings(ctx, p)
		case id == 7 && t == thrift.BOOL:
			f.Inactive, err = p.ReadBool(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

type NotesMetadataResultSpec struct {
	IncludeTitle        bool
	IncludeCreated      bool
	IncludeUpdated      bool
	IncludeDeleted      bool
	IncludeNotebookGUID bool
	IncludeTagGUIDs     bool
}

func (s *NotesMetadataResultSpec) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "NotesMetadataResultSpec")
	w.optTrue("includeTitle", 2, s.IncludeTitle)
	w.optTrue("includeCreated", 6, s.IncludeCreated)
	w.optTrue("includeUpdated", 7, s.IncludeUpdated)
	w.optTrue("includeDeleted", 8, s.IncludeDeleted)
	w.optTrue("includeNotebookGuid", 11, s.IncludeNotebookGUID)
	w.optTrue("includeTagGuids", 12, s.IncludeTagGUIDs)
	return w.close()
}

func (s *NotesMetadataResultSpec) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		if t != thrift.BOOL {
			return false, nil
		}
		var dst *bool
		switch id {
		case 2:
			dst = &s.IncludeTitle
		case 6:
			dst = &s.IncludeCreated
		case 7:
			dst = &s.IncludeUpdated
		case 8:
			dst = &s.IncludeDeleted
		case 11:
			dst = &s.IncludeNotebookGUID
		case 12:
			dst = &s.IncludeTagGUIDs
		default:
			return false, nil
		}
		v, err := p.ReadBool(ctx)
		*dst = v
		return true, err
	})
}

type NotesMetadataList struct {
	StartIndex  int32
	TotalNotes  int32
	Notes       []*NoteMetadata
	UpdateCount int32
}

func (l *NotesMetadataList) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "NotesMetadataList")
	w.i32("startIndex", 1, l.StartIndex)
	w.i32("totalNotes", 2, l.TotalNotes)
	w.field("notes", thrift.LIST, 3, func() error {
		if err := p.WriteListBegin(ctx, thrift.STRUCT, len(l.Notes)); err != nil {
			return err
		}
		for _, m := range l.Notes {
			if err := m.Write(ctx, p); err != nil {
				return err
			}
		}
		return p.WriteListEnd(ctx)
	})
	if l.UpdateCount != 0 {
		w.i32("updateCount", 6, l.UpdateCount)
	}
	return w.close()
}

func (l *NotesMetadataList) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && t == thrift.I32:
			l.StartIndex, err = p.ReadI32(ctx)
		case id == 2 && t == thrift.I32:
			l.TotalNotes, err = p.ReadI32(ctx)
		case id == 3 && t == thrift.LIST:
			l.Notes, err = readNoteMetadataList(ctx, p)
		case id == 6 && t == thrift.I32:
			l.UpdateCount, err = p.ReadI32(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

func readNoteMetadataList(ctx context.Context, p thrift.TProtocol) ([]*NoteMetadata, error) {
	elem, size, err := p.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	if elem != thrift.STRUCT {
		return nil, fmt.Errorf("expected list<NoteMetadata>, got element type %v", elem)
	}
	out := make([]*NoteMetadata, 0, size)
	for i := 0; i < size; i++ {
		m := &NoteMetadata{}
		if err := m.Read(ctx, p); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, p.ReadListEnd(ctx)
}
