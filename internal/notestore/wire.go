package notestore

import "github.com/xxxsen/notetoc/internal/notestore/edam"

func noteToWire(n *Note) *edam.Note {
	if n == nil {
		return nil
	}
	return &edam.Note{
		GUID:         n.GUID,
		Title:        n.Title,
		Content:      n.Content,
		Updated:      n.Updated,
		Deleted:      n.Deleted,
		NotebookGUID: n.NotebookGUID,
		TagGUIDs:     n.TagGUIDs,
	}
}

func noteFromWire(n *edam.Note) *Note {
	if n == nil {
		return nil
	}
	return &Note{
		NoteMetadata: NoteMetadata{
			GUID:         n.GUID,
			Title:        n.Title,
			NotebookGUID: n.NotebookGUID,
			TagGUIDs:     n.TagGUIDs,
			Deleted:      n.Deleted,
			Updated:      n.Updated,
		},
		Content: n.Content,
	}
}

func filterToWire(f NoteFilter) *edam.NoteFilter {
	return &edam.NoteFilter{
		Order:        int32(f.Order),
		Ascending:    f.Ascending,
		Words:        f.Words,
		NotebookGUID: f.NotebookGUID,
	}
}

func specToWire(s ResultSpec) *edam.NotesMetadataResultSpec {
	return &edam.NotesMetadataResultSpec{
		IncludeTitle:        s.IncludeTitle,
		IncludeUpdated:      s.IncludeUpdated,
		IncludeDeleted:      s.IncludeDeleted,
		IncludeNotebookGUID: s.IncludeNotebookGUID,
		IncludeTagGUIDs:     s.IncludeTagGUIDs,
	}
}

func listFromWire(l *edam.NotesMetadataList) *NotesMetadataList {
	if l == nil {
		return &NotesMetadataList{}
	}
	out := &NotesMetadataList{
		StartIndex: int(l.StartIndex),
		TotalNotes: int(l.TotalNotes),
		Notes:      make([]NoteMetadata, 0, len(l.Notes)),
	}
	for _, m := range l.Notes {
		if m == nil {
			continue
		}
		out.Notes = append(out.Notes, NoteMetadata{
			GUID:         m.GUID,
			Title:        m.Title,
			NotebookGUID: m.NotebookGUID,
			TagGUIDs:     m.TagGUIDs,
			Deleted:      m.Deleted,
			Updated:      m.Updated,
		})
	}
	return out
}
