// internal/browser/chromedp.go
package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Config defines headless browser settings.
type Config struct {
	Headless      bool
	ExecPath      string
	UserAgent     string
	WaitDelay     time.Duration
	Timeout       time.Duration
	DisableImages bool
}

// DefaultConfig returns the settings used when fetching through Chrome.
func DefaultConfig() Config {
	return Config{
		Headless:      true,
		WaitDelay:     time.Second,
		Timeout:       30 * time.Second,
		DisableImages: true,
	}
}

// Fetcher renders pages in a shared Chrome process, one tab per fetch,
// and hands back the resulting DOM. Tabs are independent so concurrent
// fetches do not interfere.
type Fetcher struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	config     Config

	startOnce sync.Once
	startErr  error
}

// NewFetcher prepares a Chrome allocator and the browser context every
// tab is opened from. Chrome itself is launched on the first fetch.
func NewFetcher(config Config) *Fetcher {
	opts := append([]chromedp.ExecAllocatorOption{},
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox, // Required for Docker environments
	)
	if config.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(config.ExecPath))
	}
	if config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(config.UserAgent))
	}
	if config.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	return &Fetcher{
		browserCtx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
		config: config,
	}
}

// start launches Chrome once. A context derived from a browser context
// that has not run yet would spawn its own process.
func (f *Fetcher) start() error {
	f.startOnce.Do(func() {
		if err := chromedp.Run(f.browserCtx); err != nil {
			f.startErr = fmt.Errorf("failed to start browser: %w", err)
		}
	})
	return f.startErr
}

// FetchDocument navigates a fresh tab to targetURL and parses the
// rendered HTML.
func (f *Fetcher) FetchDocument(ctx context.Context, targetURL string, headers map[string]string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("navigation to %s aborted: %w", targetURL, err)
	}
	if err := f.start(); err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	if f.config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		tabCtx, cancelTimeout = context.WithTimeout(tabCtx, f.config.Timeout)
		defer cancelTimeout()
	}

	// the tab lives under the browser, so tie it to the caller as well
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	html, err := f.render(tabCtx, targetURL, headers)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("navigation to %s aborted: %w", targetURL, ctx.Err())
		}
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML from %s: %w", targetURL, err)
	}
	return doc, nil
}

func (f *Fetcher) render(ctx context.Context, targetURL string, headers map[string]string) (string, error) {
	tasks := chromedp.Tasks{network.Enable()}
	if len(headers) > 0 {
		extra := make(network.Headers, len(headers))
		for k, v := range headers {
			extra[k] = v
		}
		tasks = append(tasks, network.SetExtraHTTPHeaders(extra))
	}
	tasks = append(tasks,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
	)
	if f.config.WaitDelay > 0 {
		tasks = append(tasks, chromedp.Sleep(f.config.WaitDelay))
	}

	var html string
	tasks = append(tasks, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(ctx, tasks); err != nil {
		return "", fmt.Errorf("navigation to %s failed: %w", targetURL, err)
	}
	return html, nil
}

// Close shuts down Chrome and every open tab.
func (f *Fetcher) Close() error {
	if f.cancel != nil {
		f.cancel()
	}
	return nil
}
