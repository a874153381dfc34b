package oauth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	mrjones "github.com/mrjones/oauth"

	appErr "github.com/xxxsen/notetoc/internal/pkg/errors"
)

type ProviderConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	// Host is the upstream service host, e.g. sandbox.evernote.com.
	Host string
}

type evernoteProvider struct {
	consumer *mrjones.Consumer
}

func NewEvernoteProvider(cfg ProviderConfig, client *http.Client) (Provider, error) {
	key := strings.TrimSpace(cfg.ConsumerKey)
	secret := strings.TrimSpace(cfg.ConsumerSecret)
	host := strings.TrimSpace(cfg.Host)
	if key == "" || secret == "" {
		return nil, fmt.Errorf("consumer key and secret are required")
	}
	if host == "" {
		return nil, fmt.Errorf("oauth host is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	base := baseURL(host)
	consumer := mrjones.NewCustomHttpClientConsumer(key, secret, mrjones.ServiceProvider{
		RequestTokenUrl:   base + "/oauth",
		AuthorizeTokenUrl: base + "/OAuth.action",
		AccessTokenUrl:    base + "/oauth",
		HttpMethod:        http.MethodGet,
	}, client)
	return &evernoteProvider{consumer: consumer}, nil
}

func baseURL(host string) string {
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return strings.TrimRight(host, "/")
	}
	return "https://" + host
}

func (p *evernoteProvider) RequestToken(ctx context.Context, callbackURL string) (*RequestToken, error) {
	if callbackURL == "" {
		return nil, appErr.ErrInvalid
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rt, loginURL, err := p.consumer.GetRequestTokenAndUrl(callbackURL)
	if err != nil {
		return nil, fmt.Errorf("get request token: %w", err)
	}
	return &RequestToken{Token: rt.Token, Secret: rt.Secret, AuthorizeURL: loginURL}, nil
}

func (p *evernoteProvider) AccessToken(ctx context.Context, requestToken, requestSecret, verifier string) (*AccessToken, error) {
	if requestToken == "" || verifier == "" {
		return nil, appErr.ErrInvalid
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	at, err := p.consumer.AuthorizeToken(&mrjones.RequestToken{Token: requestToken, Secret: requestSecret}, verifier)
	if err != nil {
		return nil, fmt.Errorf("authorize token: %w", err)
	}
	extra := at.AdditionalData
	out := &AccessToken{
		Token:           at.Token,
		Secret:          at.Secret,
		UserID:          extra["edam_userId"],
		Shard:           extra["edam_shard"],
		NoteStoreURL:    extra["edam_noteStoreUrl"],
		WebAPIURLPrefix: extra["edam_webApiUrlPrefix"],
	}
	if out.UserID == "" {
		return nil, fmt.Errorf("access token response missing edam_userId")
	}
	if raw := extra["edam_expires"]; raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse edam_expires: %w", err)
		}
		out.Expires = time.UnixMilli(ms)
	}
	return out, nil
}
