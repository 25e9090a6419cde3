// internal/catalog/provider.go
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/valpere/audiotekameta/internal/config"
	"github.com/valpere/audiotekameta/internal/errors"
	"github.com/valpere/audiotekameta/internal/monitoring"
	"github.com/valpere/audiotekameta/internal/scraper"
	"github.com/valpere/audiotekameta/internal/utils"
)

// Provider runs the search pipeline: locate candidates, then enrich all
// of them concurrently.
type Provider struct {
	profile        Profile
	locator        *Locator
	enricher       *Enricher
	maxConcurrency int
	requestTimeout time.Duration
	logger         utils.Logger
	metrics        *monitoring.Metrics
}

// NewProvider wires a provider from the process configuration.
func NewProvider(cfg *config.Config, fetcher scraper.Fetcher, logger utils.Logger, metrics *monitoring.Metrics) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	profile, err := LookupProfile(cfg.Catalog.Language)
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(cfg.Catalog.BaseURL)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid catalog base URL %q", cfg.Catalog.BaseURL)
	}

	logger = logger.WithField("locale", string(profile.Locale))

	return &Provider{
		profile:        profile,
		locator:        NewLocator(profile, baseURL, cfg.Catalog.Selectors, fetcher, cfg.Pipeline.MaxCandidates, logger, metrics),
		enricher:       NewEnricher(profile, baseURL, cfg.Catalog.Selectors, cfg.Description, fetcher, logger, metrics),
		maxConcurrency: cfg.Pipeline.MaxConcurrency,
		requestTimeout: cfg.Pipeline.RequestTimeout,
		logger:         logger,
		metrics:        metrics,
	}, nil
}

// Profile returns the active locale profile.
func (p *Provider) Profile() Profile {
	return p.profile
}

// Search returns one record per search candidate, in search page order.
// Only a blank query is an error: fetch and parse failures degrade to
// fewer or less complete records.
func (p *Provider) Search(ctx context.Context, query, author string) ([]BookRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New(errors.KindValidation, "catalog.Search", "Query parameter is required")
	}

	if p.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.requestTimeout)
		defer cancel()
	}

	candidates := p.locator.Locate(ctx, query, author)
	p.metrics.ObserveCandidates(len(candidates))

	records := make([]BookRecord, len(candidates))
	var g errgroup.Group
	if p.maxConcurrency > 0 {
		g.SetLimit(p.maxConcurrency)
	}
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			records[i] = p.enricher.Enrich(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	enriched := 0
	for _, r := range records {
		if r.Enriched {
			enriched++
		}
	}
	p.logger.WithFields(map[string]interface{}{
		"query":    query,
		"matches":  len(records),
		"enriched": enriched,
	}).Info("Search completed")

	return records, nil
}
