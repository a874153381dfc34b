package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/xxxsen/notetoc/internal/notestore"
)

const (
	enmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<!DOCTYPE en-note SYSTEM "http://xml.evernote.com/pub/enml2.dtd">` +
		`<en-note>`
	enmlFooter = `</en-note>`
)

// NoteLink is the in-app deep link to a note.
func NoteLink(userID, shard, noteGUID string) string {
	return fmt.Sprintf("evernote:///view/%s/%s/%s/%s/", userID, shard, noteGUID, noteGUID)
}

// RenderTocContent keeps the order of notes as given.
func RenderTocContent(userID, shard string, notes []notestore.NoteMetadata) string {
	var sb strings.Builder
	sb.WriteString(enmlHeader)
	for _, note := range notes {
		sb.WriteString(`<div><a href="`)
		sb.WriteString(html.EscapeString(NoteLink(userID, shard, note.GUID)))
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(note.Title))
		sb.WriteString(`</a></div>`)
	}
	sb.WriteString(enmlFooter)
	return sb.String()
}
