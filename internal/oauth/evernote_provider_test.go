package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oauthParams returns the OAuth parameters of r wherever the client put them.
func oauthParams(r *http.Request) string {
	return r.Header.Get("Authorization") + "&" + r.URL.RawQuery
}

func TestNewEvernoteProvider_RequiresCredentials(t *testing.T) {
	_, err := NewEvernoteProvider(ProviderConfig{Host: "sandbox.evernote.com"}, nil)
	require.Error(t, err)
	_, err = NewEvernoteProvider(ProviderConfig{ConsumerKey: "ck", ConsumerSecret: "cs"}, nil)
	require.Error(t, err)
}

func TestEvernoteProvider_Flow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth", r.URL.Path)
		params := oauthParams(r)
		if !strings.Contains(params, "oauth_signature") || !strings.Contains(params, "oauth_consumer_key") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.Contains(params, "oauth_verifier") {
			_, _ = w.Write([]byte("oauth_token=req&oauth_token_secret=reqsec&oauth_callback_confirmed=true"))
			return
		}
		_, _ = w.Write([]byte("oauth_token=acc&oauth_token_secret=&edam_shard=s1&edam_userId=42&edam_expires=1767225600000&edam_noteStoreUrl=https%3A%2F%2Fsandbox.evernote.com%2Fshard%2Fs1%2Fnotestore&edam_webApiUrlPrefix=https%3A%2F%2Fsandbox.evernote.com%2Fshard%2Fs1%2F"))
	}))
	defer srv.Close()

	p, err := NewEvernoteProvider(ProviderConfig{ConsumerKey: "ck", ConsumerSecret: "cs", Host: srv.URL}, srv.Client())
	require.NoError(t, err)

	rt, err := p.RequestToken(context.Background(), "https://svc.example.com/api/v1/oauth/callback")
	require.NoError(t, err)
	require.Equal(t, "req", rt.Token)
	require.Equal(t, "reqsec", rt.Secret)
	require.Equal(t, srv.URL+"/OAuth.action?oauth_token=req", rt.AuthorizeURL)

	at, err := p.AccessToken(context.Background(), rt.Token, rt.Secret, "ver")
	require.NoError(t, err)
	require.Equal(t, "acc", at.Token)
	require.Equal(t, "42", at.UserID)
	require.Equal(t, "s1", at.Shard)
	require.Equal(t, "https://sandbox.evernote.com/shard/s1/notestore", at.NoteStoreURL)
	require.Equal(t, "https://sandbox.evernote.com/shard/s1/", at.WebAPIURLPrefix)
	require.True(t, at.Expires.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestEvernoteProvider_MissingUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("oauth_token=acc&oauth_token_secret=&edam_shard=s1"))
	}))
	defer srv.Close()
	p, err := NewEvernoteProvider(ProviderConfig{ConsumerKey: "ck", ConsumerSecret: "cs", Host: srv.URL}, srv.Client())
	require.NoError(t, err)
	_, err = p.AccessToken(context.Background(), "req", "reqsec", "ver")
	require.Error(t, err)
}

func TestEvernoteProvider_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	p, err := NewEvernoteProvider(ProviderConfig{ConsumerKey: "ck", ConsumerSecret: "cs", Host: srv.URL}, srv.Client())
	require.NoError(t, err)
	_, err = p.RequestToken(context.Background(), "https://cb")
	require.Error(t, err)
	_, err = p.AccessToken(context.Background(), "", "", "")
	require.Error(t, err)
}
