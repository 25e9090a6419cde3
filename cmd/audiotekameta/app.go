// cmd/audiotekameta/app.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/valpere/audiotekameta/internal/browser"
	"github.com/valpere/audiotekameta/internal/catalog"
	"github.com/valpere/audiotekameta/internal/config"
	"github.com/valpere/audiotekameta/internal/monitoring"
	"github.com/valpere/audiotekameta/internal/scraper"
	"github.com/valpere/audiotekameta/internal/utils"
)

// app holds the components shared by the serve and search commands.
type app struct {
	config   *config.Config
	logger   utils.Logger
	metrics  *monitoring.Metrics
	provider *catalog.Provider
	closers  []io.Closer
}

// overrides are flag values applied on top of file and environment.
type overrides struct {
	port     int
	language string
}

func loadConfig(configFile string, o overrides) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if o.port != 0 {
		cfg.Server.Port = o.port
	}
	if o.language != "" {
		cfg.Catalog.Language = o.language
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newApp(cfg *config.Config, logOutput io.Writer) (*app, error) {
	if logOutput == nil {
		logOutput = os.Stderr
	}
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	metrics := monitoring.NewMetrics(monitoring.MetricsConfig{
		EnableGoMetrics:      true,
		EnableProcessMetrics: true,
	})

	a := &app{config: cfg, logger: logger, metrics: metrics}

	fetcher := a.newFetcher()
	provider, err := catalog.NewProvider(cfg, fetcher, logger, metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.provider = provider
	return a, nil
}

// newFetcher picks plain HTTP or headless Chrome.
func (a *app) newFetcher() scraper.Fetcher {
	f := a.config.Fetch
	if f.Browser.Enabled {
		a.logger.Info("Fetching pages through headless Chrome")
		b := browser.NewFetcher(browser.Config{
			Headless:      f.Browser.Headless,
			ExecPath:      f.Browser.ExecPath,
			UserAgent:     f.UserAgent,
			WaitDelay:     f.Browser.WaitDelay,
			Timeout:       f.Timeout,
			DisableImages: true,
		})
		a.closers = append(a.closers, b)
		return b
	}
	return scraper.NewHTTPClient(scraper.ClientConfig{
		Timeout:      f.Timeout,
		UserAgent:    f.UserAgent,
		RateLimit:    f.RequestsPerSecond,
		RateBurst:    f.Burst,
		MaxBodyBytes: f.MaxBodyBytes,
	})
}

// Close releases the fetcher.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warnf("Failed to close resource: %v", err)
		}
	}
}
