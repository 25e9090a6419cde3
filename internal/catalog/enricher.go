// internal/catalog/enricher.go
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/audiotekameta/internal/config"
	"github.com/valpere/audiotekameta/internal/errors"
	"github.com/valpere/audiotekameta/internal/monitoring"
	"github.com/valpere/audiotekameta/internal/scraper"
	"github.com/valpere/audiotekameta/internal/utils"
)

// field is the outcome of extracting one value: present or absent.
type field[T any] struct {
	value T
	ok    bool
}

func present[T any](v T) field[T] {
	return field[T]{value: v, ok: true}
}

func (f field[T]) or(def T) T {
	if f.ok {
		return f.value
	}
	return def
}

func (f field[T]) ptr() *T {
	if !f.ok {
		return nil
	}
	v := f.value
	return &v
}

// details holds everything read from one detail page before it is merged
// into the candidate.
type details struct {
	narrator    field[string]
	duration    field[int]
	publisher   field[string]
	kind        field[string]
	genres      field[[]string]
	tags        []string
	rating      field[float64]
	description field[string]
	cover       field[string]
}

// Enricher widens a candidate with the fields of its detail page.
type Enricher struct {
	profile     Profile
	baseURL     *url.URL
	selectors   config.SelectorsConfig
	description config.DescriptionConfig
	fetcher     scraper.Fetcher
	logger      utils.Logger
	metrics     *monitoring.Metrics
}

// NewEnricher creates an enricher for one locale.
func NewEnricher(profile Profile, baseURL *url.URL, selectors config.SelectorsConfig, description config.DescriptionConfig, fetcher scraper.Fetcher, logger utils.Logger, metrics *monitoring.Metrics) *Enricher {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	if description.BacklinkText == "" {
		description.BacklinkText = "Audioteka link"
	}
	return &Enricher{
		profile:     profile,
		baseURL:     baseURL,
		selectors:   selectors,
		description: description,
		fetcher:     fetcher,
		logger:      logger,
		metrics:     metrics,
	}
}

// Enrich fetches the candidate's detail page and merges its fields into a
// record. On any failure the candidate is returned unchanged, widened to
// a record with every detail field unset.
func (e *Enricher) Enrich(ctx context.Context, c SearchCandidate) (record BookRecord) {
	log := e.logger.WithFields(map[string]interface{}{"id": c.ID, "title": c.Title})

	defer func() {
		if r := recover(); r != nil {
			err := errors.E(errors.KindEnrichment, "catalog.Enrich", fmt.Errorf("panic: %v", r))
			log.Errorf("Enrichment failed: %v", err)
			record = BookRecord{SearchCandidate: c}
		}
		e.metrics.ObserveEnrichment(record.Enriched)
	}()

	start := time.Now()
	doc, err := e.fetcher.FetchDocument(ctx, c.URL, map[string]string{
		"Accept-Language": e.profile.AcceptLanguage(),
	})
	e.metrics.ObserveFetch(monitoring.PageDetail, time.Since(start), err)
	if err != nil {
		log.Errorf("Enrichment failed: %v", errors.E(errors.KindEnrichment, "catalog.Enrich", err))
		return BookRecord{SearchCandidate: c}
	}

	d := e.extract(doc.Selection, c, log)
	return e.merge(c, d)
}

// extract reads every detail field. Missing or malformed fields are left
// absent and never stop the others.
func (e *Enricher) extract(page *goquery.Selection, c SearchCandidate, log utils.Logger) details {
	var d details

	rows := []struct {
		field Field
		read  func(cell *goquery.Selection) error
	}{
		{FieldNarrator, func(cell *goquery.Selection) error {
			if names := nonEmpty(scraper.Texts(cell, "a")); len(names) > 0 {
				d.narrator = present(strings.Join(names, ", "))
			}
			return nil
		}},
		{FieldDuration, func(cell *goquery.Selection) error {
			raw := strings.TrimSpace(cell.Text())
			if raw == "" {
				return nil
			}
			minutes, ok := ParseDuration(raw, e.profile.HourUnits)
			if !ok {
				return fmt.Errorf("could not parse duration %q", raw)
			}
			d.duration = present(minutes)
			return nil
		}},
		{FieldPublisher, func(cell *goquery.Selection) error {
			if name := scraper.Text(cell, "a"); name != "" {
				d.publisher = present(name)
			}
			return nil
		}},
		{FieldType, func(cell *goquery.Selection) error {
			if kind := strings.TrimSpace(cell.Text()); kind != "" {
				d.kind = present(kind)
			}
			return nil
		}},
		{FieldGenres, func(cell *goquery.Selection) error {
			d.genres = present(nonEmpty(scraper.Texts(cell, "a")))
			return nil
		}},
	}

	for _, row := range rows {
		cell := scraper.LabeledCell(page, e.selectors.DetailsRow, e.selectors.DetailsValue, e.profile.Label(row.field))
		if cell.Length() == 0 {
			log.Debugf("Row %q not found", e.profile.Label(row.field))
			continue
		}
		if err := row.read(cell); err != nil {
			e.fieldFailed(log, string(row.field), err)
		}
	}

	d.tags = nonEmpty(scraper.Texts(page, e.selectors.Collections))

	if raw := scraper.Text(page, e.selectors.DetailRating); raw != "" {
		if rating := ParseRating(raw); rating != nil {
			d.rating = present(*rating)
		} else {
			log.Debugf("Rating %q treated as absent", raw)
		}
	}

	descHTML, found, err := scraper.InnerHTML(page, e.selectors.Description)
	switch {
	case err != nil:
		e.fieldFailed(log, "description", err)
	case found:
		desc := SanitizeDescription(descHTML)
		if e.description.AddBacklink {
			desc = WithBacklink(desc, c.URL, e.description.BacklinkText)
		}
		d.description = present(desc)
	default:
		log.Debug("Description not found")
	}

	if src, ok := scraper.Attr(page, e.selectors.DetailCover, "src"); ok {
		if cover := CleanCoverURL(scraper.ResolveURL(e.baseURL, src)); cover != "" {
			d.cover = present(cover)
		}
	}

	return d
}

func (e *Enricher) fieldFailed(log utils.Logger, name string, err error) {
	log.Warnf("%v", errors.E(errors.KindFieldParse, "catalog.extract."+name, err))
	e.metrics.FieldParseFailure(name)
}

// merge combines the candidate with the extracted details.
func (e *Enricher) merge(c SearchCandidate, d details) BookRecord {
	record := BookRecord{
		SearchCandidate: c,
		Narrator:        d.narrator.or(""),
		Duration:        d.duration.ptr(),
		Publisher:       d.publisher.ptr(),
		Type:            d.kind.ptr(),
		Genres:          d.genres.or([]string{}),
		Tags:            d.tags,
		Series:          []string{},
		Description:     d.description.or(""),
		Languages:       []string{e.profile.LanguageName},
		Identifiers:     map[string]string{AudiotekaSource.ID: c.ID},
		Enriched:        true,
	}
	record.Cover = d.cover.or(c.Cover)
	record.Rating = d.rating.ptr()
	return record
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
