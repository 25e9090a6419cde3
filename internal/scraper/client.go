// internal/scraper/client.go
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Fetcher turns a URL into a parsed HTML document. The pipeline only
// ever sees documents, never sockets.
type Fetcher interface {
	FetchDocument(ctx context.Context, targetURL string, headers map[string]string) (*goquery.Document, error)
}

// HTTPClient fetches pages over plain HTTP with browser-like headers.
// It does not retry: a failed fetch is reported to the caller at once.
type HTTPClient struct {
	httpClient  *http.Client
	userAgent   string
	headers     map[string]string
	rateLimiter *rate.Limiter
	maxBody     int64
}

// ClientConfig defines configuration options for the HTTP client
type ClientConfig struct {
	Timeout      time.Duration
	UserAgent    string
	Headers      map[string]string
	RateLimit    float64 // requests per second, 0 means unlimited
	RateBurst    int
	MaxBodyBytes int64
	Transport    http.RoundTripper
}

// NewHTTPClient creates a new HTTP client with the specified configuration
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = 10 << 20
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 1
	}

	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}

	transport := config.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		userAgent:   config.UserAgent,
		headers:     config.Headers,
		rateLimiter: rate.NewLimiter(limit, config.RateBurst),
		maxBody:     config.MaxBodyBytes,
	}
}

// Get performs a single GET request. Non-2xx responses are returned as
// *HTTPError with the body already closed.
func (c *HTTPClient) Get(ctx context.Context, targetURL string, headers map[string]string) (*http.Response, error) {
	if _, err := url.ParseRequestURI(targetURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setRequestHeaders(req, headers)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: targetURL}
	}
	return resp, nil
}

// FetchDocument fetches targetURL and parses the body as HTML.
func (c *HTTPClient) FetchDocument(ctx context.Context, targetURL string, headers map[string]string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, targetURL, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", targetURL, err)
	}
	return doc, nil
}

// setRequestHeaders makes requests look like they come from a browser.
// Per-call headers win over client-wide ones.
func (c *HTTPClient) setRequestHeaders(req *http.Request, headers map[string]string) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

// UserAgent returns the identification header sent with every request.
func (c *HTTPClient) UserAgent() string {
	return c.userAgent
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPError represents a non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL: %s)", e.StatusCode, e.Status, e.URL)
}
