package notestore

// Note sort orders understood by the note store.
const (
	SortOrderCreated   = 1
	SortOrderUpdated   = 2
	SortOrderRelevance = 3
	SortOrderTitle     = 5
)

type NoteMetadata struct {
	GUID         string   `json:"guid"`
	Title        string   `json:"title,omitempty"`
	NotebookGUID string   `json:"notebookGuid,omitempty"`
	TagGUIDs     []string `json:"tagGuids,omitempty"`
	Deleted      int64    `json:"deleted,omitempty"`
	Updated      int64    `json:"updated,omitempty"`
}

// IsDeleted reports whether the note sits in the trash.
func (n *NoteMetadata) IsDeleted() bool {
	return n != nil && n.Deleted != 0
}

type Note struct {
	NoteMetadata
	Content string `json:"content,omitempty"`
}

type NoteFilter struct {
	NotebookGUID string `json:"notebookGuid,omitempty"`
	Words        string `json:"words,omitempty"`
	Order        int    `json:"order,omitempty"`
	Ascending    bool   `json:"ascending"`
}

type ResultSpec struct {
	IncludeTitle        bool `json:"includeTitle"`
	IncludeNotebookGUID bool `json:"includeNotebookGuid"`
	IncludeTagGUIDs     bool `json:"includeTagGuids"`
	IncludeDeleted      bool `json:"includeDeleted"`
	IncludeUpdated      bool `json:"includeUpdated"`
}

type NotesMetadataList struct {
	StartIndex int            `json:"startIndex"`
	TotalNotes int            `json:"totalNotes"`
	Notes      []NoteMetadata `json:"notes"`
}
