package notestore

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	ProductionHost = "www.evernote.com"
	SandboxHost    = "sandbox.evernote.com"
)

// Host returns the upstream service host for the sandbox setting.
func Host(sandbox bool) string {
	if sandbox {
		return SandboxHost
	}
	return ProductionHost
}

// Factory hands out a promise-style Store bound to one user's note store.
type Factory struct {
	host       string
	httpClient *http.Client
	userAgent  string
}

func NewFactory(host string, httpClient *http.Client, userAgent string) *Factory {
	if host == "" {
		host = ProductionHost
	}
	return &Factory{host: host, httpClient: httpClient, userAgent: userAgent}
}

// StoreURL prefers the URL handed out at auth time and falls back to the
// shard's conventional location.
func (f *Factory) StoreURL(noteStoreURL, shard string) (string, error) {
	if u := strings.TrimSpace(noteStoreURL); u != "" {
		return u, nil
	}
	if shard == "" {
		return "", fmt.Errorf("neither note store url nor shard is known")
	}
	return fmt.Sprintf("https://%s/shard/%s/notestore", f.host, shard), nil
}

func (f *Factory) ForUser(noteStoreURL, shard string) (Store, error) {
	u, err := f.StoreURL(noteStoreURL, shard)
	if err != nil {
		return nil, err
	}
	return Promisify(NewThriftClient(ThriftClientOptions{
		URL:        u,
		HTTPClient: f.httpClient,
		UserAgent:  f.userAgent,
	})), nil
}
