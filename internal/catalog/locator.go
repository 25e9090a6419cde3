// internal/catalog/locator.go
package catalog

import (
	"context"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/audiotekameta/internal/config"
	"github.com/valpere/audiotekameta/internal/errors"
	"github.com/valpere/audiotekameta/internal/monitoring"
	"github.com/valpere/audiotekameta/internal/scraper"
	"github.com/valpere/audiotekameta/internal/utils"
)

// Locator turns a free-text query into search candidates by reading the
// catalog's search results page.
type Locator struct {
	profile       Profile
	baseURL       *url.URL
	selectors     config.SelectorsConfig
	fetcher       scraper.Fetcher
	maxCandidates int
	logger        utils.Logger
	metrics       *monitoring.Metrics
}

// NewLocator creates a locator for one locale.
func NewLocator(profile Profile, baseURL *url.URL, selectors config.SelectorsConfig, fetcher scraper.Fetcher, maxCandidates int, logger utils.Logger, metrics *monitoring.Metrics) *Locator {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Locator{
		profile:       profile,
		baseURL:       baseURL,
		selectors:     selectors,
		fetcher:       fetcher,
		maxCandidates: maxCandidates,
		logger:        logger,
		metrics:       metrics,
	}
}

// SearchURL builds the locale's search URL for query.
func (l *Locator) SearchURL(query string) string {
	return l.baseURL.JoinPath(l.profile.SearchPath).String() + "?phrase=" + url.QueryEscape(query)
}

// Locate fetches the search page and returns the well-formed result cards
// in page order. It never fails: a page that cannot be fetched or parsed
// yields no candidates. author is only logged.
func (l *Locator) Locate(ctx context.Context, query, author string) []SearchCandidate {
	searchURL := l.SearchURL(query)
	log := l.logger.WithFields(map[string]interface{}{
		"query":  query,
		"author": author,
		"url":    searchURL,
	})
	log.Info("Searching catalog")

	start := time.Now()
	doc, err := l.fetcher.FetchDocument(ctx, searchURL, map[string]string{
		"Accept-Language": l.profile.AcceptLanguage(),
	})
	l.metrics.ObserveFetch(monitoring.PageSearch, time.Since(start), err)
	if err != nil {
		log.Errorf("Search failed: %v", errors.E(errors.KindSearch, "catalog.Locate", err))
		return []SearchCandidate{}
	}

	candidates := l.parseCards(doc)
	log.Debugf("Found %d candidates", len(candidates))
	return candidates
}

func (l *Locator) parseCards(doc *goquery.Document) []SearchCandidate {
	cards := doc.Find(l.selectors.Card)
	candidates := make([]SearchCandidate, 0, cards.Length())

	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		c, ok := l.parseCard(card)
		if !ok {
			l.logger.Debugf("Skipping malformed result card %d", i)
			return true
		}
		candidates = append(candidates, c)
		return l.maxCandidates <= 0 || len(candidates) < l.maxCandidates
	})
	return candidates
}

// parseCard reads one result card. ok is false when the title, link or
// author is missing.
func (l *Locator) parseCard(card *goquery.Selection) (SearchCandidate, bool) {
	title := scraper.Text(card, l.selectors.Title)
	href, _ := scraper.Attr(card, l.selectors.Link, "href")
	detailURL := scraper.ResolveURL(l.baseURL, href)
	author := scraper.Text(card, l.selectors.Author)

	if title == "" || detailURL == "" || author == "" {
		return SearchCandidate{}, false
	}

	id, _ := card.Attr("data-item-id")
	if id == "" {
		id = scraper.LastPathSegment(detailURL)
	}

	cover, _ := scraper.Attr(card, l.selectors.Cover, "src")

	return SearchCandidate{
		ID:      id,
		Title:   title,
		Authors: []string{author},
		URL:     detailURL,
		Cover:   CleanCoverURL(scraper.ResolveURL(l.baseURL, cover)),
		Rating:  ParseRating(scraper.Text(card, l.selectors.Rating)),
		Source:  AudiotekaSource,
	}, true
}
