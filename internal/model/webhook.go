package model

import "time"

// Webhook reasons sent by the note store.
const (
	ReasonCreate         = "create"
	ReasonUpdate         = "update"
	ReasonBusinessUpdate = "business_update"
	ReasonNotebookUpdate = "notebook_update"
)

type WebhookEvent struct {
	Reason       string `json:"reason" form:"reason"`
	UserID       string `json:"user_id" form:"userId"`
	NoteGUID     string `json:"guid" form:"guid"`
	NotebookGUID string `json:"notebook_guid" form:"notebookGuid"`
}

// Triggers reports whether the reason asks for a table of contents rebuild.
// Creation is left out: a new note is followed by an update once tagged.
func (e WebhookEvent) Triggers() bool {
	return e.Reason == ReasonUpdate || e.Reason == ReasonBusinessUpdate
}

func (e WebhookEvent) Complete() bool {
	return e.UserID != "" && e.NoteGUID != "" && e.NotebookGUID != ""
}

type WebhookStatus string

const (
	WebhookIgnored       WebhookStatus = "ignored"
	WebhookUnknownUser   WebhookStatus = "unknown_user"
	WebhookTagNotPresent WebhookStatus = "tag_not_present"
	WebhookDone          WebhookStatus = "done"
	WebhookFailed        WebhookStatus = "failed"
)

type WebhookHistoryEntry struct {
	ID         string        `json:"id"`
	Event      WebhookEvent  `json:"event"`
	ReceivedAt time.Time     `json:"received_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Status     WebhookStatus `json:"status"`
	Message    string        `json:"message,omitempty"`
}
