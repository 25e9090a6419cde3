// internal/catalog/helpers_test.go
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/valpere/audiotekameta/internal/config"
	"github.com/valpere/audiotekameta/internal/monitoring"
	"github.com/valpere/audiotekameta/internal/scraper"
	"github.com/valpere/audiotekameta/internal/utils"
)

// fixtureServer serves testdata pages by path and records every request.
// Unknown paths answer 500.
type fixtureServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

func newFixtureServer(t *testing.T, pages map[string]string) *fixtureServer {
	t.Helper()

	fs := &fixtureServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.requests = append(fs.requests, r.Clone(context.Background()))
		fs.mu.Unlock()

		name, ok := pages[r.URL.Path]
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		body, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fixtureServer) Requests() []*http.Request {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]*http.Request(nil), fs.requests...)
}

func (fs *fixtureServer) RequestFor(path string) *http.Request {
	for _, r := range fs.Requests() {
		if r.URL.Path == path {
			return r
		}
	}
	return nil
}

// stubFetcher parses testdata files keyed by URL without any network.
type stubFetcher struct {
	pages map[string]string
	err   error
}

func (f stubFetcher) FetchDocument(_ context.Context, targetURL string, _ map[string]string) (*goquery.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	name, ok := f.pages[targetURL]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", targetURL)
	}
	file, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return goquery.NewDocumentFromReader(file)
}

// nilDocFetcher misbehaves by returning neither a document nor an error.
type nilDocFetcher struct{}

func (nilDocFetcher) FetchDocument(context.Context, string, map[string]string) (*goquery.Document, error) {
	return nil, nil
}

func newTestProvider(t *testing.T, baseURL string, mutate func(*config.Config)) *Provider {
	t.Helper()

	cfg := config.Default()
	cfg.Catalog.BaseURL = baseURL
	if mutate != nil {
		mutate(cfg)
	}

	fetcher := scraper.NewHTTPClient(scraper.ClientConfig{Timeout: 5 * time.Second})
	p, err := NewProvider(cfg, fetcher, utils.NewNopLogger(), monitoring.NewMetrics(monitoring.MetricsConfig{}))
	require.NoError(t, err)
	return p
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
