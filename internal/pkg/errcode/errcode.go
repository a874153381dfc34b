package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrUnauthorized
	ErrNotFound
	ErrInvalid
	ErrInternal
	ErrIgnored
	ErrUnknownUser
	ErrTagNotPresent
	ErrNoTaggedNotes
	ErrUpstream
	ErrUpstreamRateLimit
)
