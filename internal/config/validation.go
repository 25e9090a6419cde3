// internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// SupportedLanguages lists the catalog locales the extractor has label
// tables for.
var SupportedLanguages = []string{"pl", "cz"}

// ValidationError describes a single invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every invalid setting found.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		add("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		add("server", "timeouts must be non-negative")
	}

	if !isSupportedLanguage(c.Catalog.Language) {
		add("catalog.language", "unsupported language %q, expected one of %s",
			c.Catalog.Language, strings.Join(SupportedLanguages, ", "))
	}
	if u, err := url.Parse(c.Catalog.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("catalog.base_url", "must be an absolute URL, got %q", c.Catalog.BaseURL)
	}

	s := c.Catalog.Selectors
	required := map[string]string{
		"card": s.Card, "title": s.Title, "link": s.Link, "author": s.Author,
		"description": s.Description, "details_row": s.DetailsRow, "details_value": s.DetailsValue,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			add("catalog.selectors."+name, "cannot be empty")
		}
	}

	if c.Pipeline.MaxCandidates < 0 {
		add("pipeline.max_candidates", "must be non-negative, got %d", c.Pipeline.MaxCandidates)
	}
	if c.Pipeline.MaxConcurrency < 0 || c.Pipeline.MaxConcurrency > 100 {
		add("pipeline.max_concurrency", "must be between 0 and 100, got %d", c.Pipeline.MaxConcurrency)
	}
	if c.Pipeline.RequestTimeout < 0 {
		add("pipeline.request_timeout", "must be non-negative")
	}

	if c.Fetch.Timeout < 0 {
		add("fetch.timeout", "must be non-negative")
	}
	if c.Fetch.RequestsPerSecond < 0 {
		add("fetch.requests_per_second", "must be non-negative")
	}
	if c.Fetch.Burst < 0 {
		add("fetch.burst", "must be non-negative")
	}
	if c.Fetch.MaxBodyBytes < 0 {
		add("fetch.max_body_bytes", "must be non-negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
