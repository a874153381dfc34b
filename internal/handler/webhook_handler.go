package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/notetoc/internal/model"
	"github.com/xxxsen/notetoc/internal/pkg/response"
	"github.com/xxxsen/notetoc/internal/service"
)

type WebhookHandler struct {
	dispatcher *service.WebhookDispatcher
	history    *service.WebhookHistory
}

func NewWebhookHandler(dispatcher *service.WebhookDispatcher, history *service.WebhookHistory) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, history: history}
}

func (h *WebhookHandler) Receive(c *gin.Context) {
	ev := model.WebhookEvent{
		UserID:       c.Query("userId"),
		NoteGUID:     c.Query("guid"),
		NotebookGUID: c.Query("notebookGuid"),
		Reason:       c.Query("reason"),
	}
	out, err := h.dispatcher.Dispatch(c.Request.Context(), ev)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"message": fmt.Sprintf("%s note %q (%s) in notebook %s", out.Action, out.NoteTitle, out.NoteGUID, out.NotebookGUID),
		"outcome": out,
	})
}

func (h *WebhookHandler) History(c *gin.Context) {
	userID := getUserID(c)
	items := make([]model.WebhookHistoryEntry, 0)
	for _, entry := range h.history.List() {
		if entry.Event.UserID == userID {
			items = append(items, entry)
		}
	}
	response.Success(c, gin.H{"events": items})
}
