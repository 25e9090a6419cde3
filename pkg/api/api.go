// pkg/api/api.go
package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/valpere/audiotekameta/internal/catalog"
)

// NewSearchResponse renders records in the public response shape,
// preserving their order.
func NewSearchResponse(records []catalog.BookRecord) SearchResponse {
	matches := make([]Match, 0, len(records))
	for _, r := range records {
		matches = append(matches, NewMatch(r))
	}
	return SearchResponse{Matches: matches}
}

// NewMatch converts one record.
func NewMatch(r catalog.BookRecord) Match {
	m := Match{
		Title:         r.Title,
		Subtitle:      r.Subtitle,
		Author:        strings.Join(r.Authors, ", "),
		Narrator:      r.Narrator,
		PublishedYear: PublishedYear(r.PublishedDate),
		Description:   r.Description,
		Cover:         r.Cover,
		ISBN:          r.Identifiers["isbn"],
		ASIN:          r.Identifiers["asin"],
		Genres:        listOrNil(r.Genres),
		Tags:          listOrNil(r.Tags),
		Duration:      r.Duration,
	}
	if r.Publisher != nil {
		m.Publisher = *r.Publisher
	}
	if r.Series != nil {
		series := make([]SeriesRef, 0, len(r.Series))
		for _, name := range r.Series {
			series = append(series, SeriesRef{Series: name})
		}
		m.Series = &series
	}
	if len(r.Languages) > 0 {
		m.Language = r.Languages[0]
	}
	return m
}

var publishedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
	"02.01.2006",
}

// PublishedYear extracts the four-digit year from a publication date.
// Unrecognised dates yield "".
func PublishedYear(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	for _, layout := range publishedDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return strconv.Itoa(t.Year())
		}
	}
	return ""
}

func listOrNil(items []string) *[]string {
	if items == nil {
		return nil
	}
	return &items
}
