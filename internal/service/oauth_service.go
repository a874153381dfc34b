package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/directory"
	"github.com/xxxsen/notetoc/internal/oauth"
	appErr "github.com/xxxsen/notetoc/internal/pkg/errors"
	"github.com/xxxsen/notetoc/internal/pkg/jwt"
)

const (
	requestTokenTTL     = 10 * time.Minute
	requestTokenMaxKeep = 1024
)

type OAuthService struct {
	provider    oauth.Provider
	users       *directory.Directory
	callbackURL string
	jwtSecret   []byte
	jwtTTL      time.Duration
	pending     *expirable.LRU[string, string]
}

func NewOAuthService(provider oauth.Provider, users *directory.Directory, callbackURL string, secret []byte, ttl time.Duration) *OAuthService {
	return &OAuthService{
		provider:    provider,
		users:       users,
		callbackURL: callbackURL,
		jwtSecret:   secret,
		jwtTTL:      ttl,
		pending:     expirable.NewLRU[string, string](requestTokenMaxKeep, nil, requestTokenTTL),
	}
}

// Begin obtains a request token and returns where to send the user.
func (s *OAuthService) Begin(ctx context.Context) (string, error) {
	rt, err := s.provider.RequestToken(ctx, s.callbackURL)
	if err != nil {
		return "", err
	}
	s.pending.Add(rt.Token, rt.Secret)
	return rt.AuthorizeURL, nil
}

// Complete exchanges the verifier, records the user and returns a session
// token for it.
func (s *OAuthService) Complete(ctx context.Context, requestToken, verifier string) (*directory.UserRecord, string, error) {
	if requestToken == "" || verifier == "" {
		return nil, "", appErr.ErrInvalid
	}
	// Only the caller that removes the pending entry may exchange it.
	secret, ok := s.pending.Get(requestToken)
	if !ok || !s.pending.Remove(requestToken) {
		return nil, "", appErr.ErrInvalid
	}
	at, err := s.provider.AccessToken(ctx, requestToken, secret, verifier)
	if err != nil {
		return nil, "", err
	}
	s.users.AddUser(at.UserID, at.Token, at.Secret, at.Expires)
	s.users.SetShard(at.UserID, at.Shard)
	s.users.SetNoteStoreURL(at.UserID, at.NoteStoreURL)
	s.users.SetWebAPIURLPrefix(at.UserID, at.WebAPIURLPrefix)
	logutil.GetLogger(ctx).Info("user authorized",
		zap.String("user_id", at.UserID),
		zap.String("shard", at.Shard),
		zap.Time("expires", at.Expires),
	)
	user, _ := s.users.Get(at.UserID)
	token, err := jwt.GenerateToken(at.UserID, at.Shard, s.jwtSecret, s.sessionTTL(at.Expires))
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// sessionTTL never outlives the upstream token.
func (s *OAuthService) sessionTTL(expires time.Time) time.Duration {
	ttl := s.jwtTTL
	if !expires.IsZero() {
		if left := time.Until(expires); left > 0 && left < ttl {
			ttl = left
		}
	}
	return ttl
}

// Me returns the stored record for the session user.
func (s *OAuthService) Me(userID string) (*directory.UserRecord, error) {
	user, ok := s.users.Get(userID)
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &user, nil
}
