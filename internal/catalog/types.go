// internal/catalog/types.go
package catalog

// Source describes the catalog a record came from.
type Source struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// AudiotekaSource is attached to every candidate.
var AudiotekaSource = Source{
	ID:          "audioteka",
	Description: "Audioteka",
	Link:        "https://audioteka.com",
}

// SearchCandidate is a partial record read from one search result card.
// It only lives for the duration of a request.
type SearchCandidate struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	URL     string   `json:"url"`
	Cover   string   `json:"cover,omitempty"`
	Rating  *float64 `json:"rating"`
	Source  Source   `json:"source"`
}

// BookRecord is a candidate widened with the fields read from its detail
// page. A record whose enrichment failed carries only the candidate part.
type BookRecord struct {
	SearchCandidate

	Narrator      string            `json:"narrator,omitempty"`
	Duration      *int              `json:"duration,omitempty"`
	Publisher     *string           `json:"publisher,omitempty"`
	Type          *string           `json:"type,omitempty"`
	Genres        []string          `json:"genres,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Series        []string          `json:"series,omitempty"`
	Description   string            `json:"description,omitempty"`
	Languages     []string          `json:"languages,omitempty"`
	Identifiers   map[string]string `json:"identifiers,omitempty"`
	Subtitle      string            `json:"subtitle,omitempty"`
	PublishedDate string            `json:"publishedDate,omitempty"`

	// Enriched reports whether the detail page was merged in.
	Enriched bool `json:"-"`
}
