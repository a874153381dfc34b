package oauth

import (
	"context"
	"time"
)

// RequestToken is the temporary credential plus the page the user is sent
// to for approval.
type RequestToken struct {
	Token        string
	Secret       string
	AuthorizeURL string
}

// AccessToken carries the token pair plus the account routing metadata
// returned alongside it.
type AccessToken struct {
	Token           string
	Secret          string
	UserID          string
	Shard           string
	Expires         time.Time
	NoteStoreURL    string
	WebAPIURLPrefix string
}

// Provider is the three-step OAuth1 exchange.
type Provider interface {
	RequestToken(ctx context.Context, callbackURL string) (*RequestToken, error)
	AccessToken(ctx context.Context, requestToken, requestSecret, verifier string) (*AccessToken, error)
}
