package notestore

import (
	"errors"
	"fmt"

	"github.com/xxxsen/notetoc/internal/notestore/edam"
)

type ErrorKind string

const (
	KindNotFound ErrorKind = "not_found"
	KindUser     ErrorKind = "user"
	KindSystem   ErrorKind = "system"
)

// IdentifierNoteGUID is the not-found identifier for a guid naming no note.
const IdentifierNoteGUID = "Note.guid"

// CodeRateLimitHit is the system error code for an exhausted API quota.
const CodeRateLimitHit = int(edam.ErrorCodeRateLimitReached)

// Error is a failure reported by the note store itself, as opposed to a
// transport failure.
type Error struct {
	Kind              ErrorKind
	Identifier        string
	Key               string
	Code              int
	Parameter         string
	Message           string
	RateLimitDuration int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("note store: not found: identifier=%s key=%s", e.Identifier, e.Key)
	case KindUser:
		return fmt.Sprintf("note store: user error: code=%d parameter=%s", e.Code, e.Parameter)
	default:
		if e.RateLimitDuration > 0 {
			return fmt.Sprintf("note store: system error: code=%d rate limited for %ds", e.Code, e.RateLimitDuration)
		}
		return fmt.Sprintf("note store: system error: code=%d %s", e.Code, e.Message)
	}
}

// IsNoteGUIDNotFound reports whether err says the requested note guid does
// not exist.
func IsNoteGUIDNotFound(err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == KindNotFound && se.Identifier == IdentifierNoteGUID
}

func IsRateLimited(err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == CodeRateLimitHit || se.RateLimitDuration > 0
}
