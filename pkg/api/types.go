// pkg/api/types.go
package api

// SearchResponse is the body of a successful /search call.
type SearchResponse struct {
	Matches []Match `json:"matches"`
}

// Match is one book in a search response. Optional fields are omitted
// when empty; list fields are emitted whenever the record carries them,
// even when empty.
type Match struct {
	Title         string       `json:"title"`
	Subtitle      string       `json:"subtitle,omitempty"`
	Author        string       `json:"author"`
	Narrator      string       `json:"narrator,omitempty"`
	Publisher     string       `json:"publisher,omitempty"`
	PublishedYear string       `json:"publishedYear,omitempty"`
	Description   string       `json:"description,omitempty"`
	Cover         string       `json:"cover,omitempty"`
	ISBN          string       `json:"isbn,omitempty"`
	ASIN          string       `json:"asin,omitempty"`
	Genres        *[]string    `json:"genres,omitempty"`
	Tags          *[]string    `json:"tags,omitempty"`
	Series        *[]SeriesRef `json:"series,omitempty"`
	Language      string       `json:"language,omitempty"`
	Duration      *int         `json:"duration,omitempty"`
}

// SeriesRef names a series and the book's position in it. The catalog
// never exposes positions.
type SeriesRef struct {
	Series   string  `json:"series"`
	Sequence *string `json:"sequence,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthStatus is the body of /health.
type HealthStatus struct {
	Status  string `json:"status"` // healthy, unhealthy
	Locale  string `json:"locale"`
	Version string `json:"version"`
}
