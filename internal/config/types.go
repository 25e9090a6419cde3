// internal/config/types.go
package config

import "time"

// Config is the process-wide configuration. It is built once at startup
// and passed explicitly to every component that needs it.
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	Catalog     CatalogConfig     `yaml:"catalog" json:"catalog"`
	Description DescriptionConfig `yaml:"description" json:"description"`
	Pipeline    PipelineConfig    `yaml:"pipeline" json:"pipeline"`
	Fetch       FetchConfig       `yaml:"fetch" json:"fetch"`
	Log         LogConfig         `yaml:"log" json:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// CatalogConfig selects the catalog locale and the CSS selectors used to
// read its pages.
type CatalogConfig struct {
	Language  string          `yaml:"language" json:"language"`
	BaseURL   string          `yaml:"base_url" json:"base_url"`
	Selectors SelectorsConfig `yaml:"selectors" json:"selectors"`
}

// SelectorsConfig holds the CSS selectors for search cards and detail
// pages. The catalog ships hashed class names that change on redeploys,
// so they are configurable.
type SelectorsConfig struct {
	Card   string `yaml:"card" json:"card"`
	Title  string `yaml:"title" json:"title"`
	Link   string `yaml:"link" json:"link"`
	Author string `yaml:"author" json:"author"`
	Cover  string `yaml:"cover" json:"cover"`
	Rating string `yaml:"rating" json:"rating"`

	DetailCover  string `yaml:"detail_cover" json:"detail_cover"`
	DetailRating string `yaml:"detail_rating" json:"detail_rating"`
	Description  string `yaml:"description" json:"description"`
	Collections  string `yaml:"collections" json:"collections"`
	DetailsRow   string `yaml:"details_row" json:"details_row"`
	DetailsValue string `yaml:"details_value" json:"details_value"`
}

// DescriptionConfig controls description post-processing.
type DescriptionConfig struct {
	AddBacklink  bool   `yaml:"add_backlink" json:"add_backlink"`
	BacklinkText string `yaml:"backlink_text" json:"backlink_text"`
}

// PipelineConfig bounds the work done for one search request.
type PipelineConfig struct {
	MaxCandidates  int           `yaml:"max_candidates" json:"max_candidates"`
	MaxConcurrency int           `yaml:"max_concurrency" json:"max_concurrency"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// FetchConfig configures the HTML transport.
type FetchConfig struct {
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	Browser           BrowserConfig `yaml:"browser" json:"browser"`
}

// BrowserConfig enables fetching through a headless Chrome instance.
type BrowserConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Headless  bool          `yaml:"headless" json:"headless"`
	ExecPath  string        `yaml:"exec_path,omitempty" json:"exec_path,omitempty"`
	WaitDelay time.Duration `yaml:"wait_delay" json:"wait_delay"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}
