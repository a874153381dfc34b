package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid")
	ErrInternal     = errors.New("internal")

	ErrIgnored       = errors.New("ignored")
	ErrUnknownUser   = errors.New("unknown user")
	ErrTagNotPresent = errors.New("tag not present")
	// ErrNoTaggedNotes means the search came back empty even though the tag
	// was just seen on the triggering note.
	ErrNoTaggedNotes = errors.New("no tagged notes found")
)

// IsRejected reports whether err is a local rejection that never reached
// the note store.
func IsRejected(err error) bool {
	return errors.Is(err, ErrIgnored) || errors.Is(err, ErrUnknownUser) || errors.Is(err, ErrTagNotPresent)
}
