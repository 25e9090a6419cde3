// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://audioteka.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Default returns the configuration used when no file or environment
// override is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3001,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Language: "pl",
			BaseURL:  DefaultBaseURL,
			Selectors: SelectorsConfig{
				Card:         ".adtk-item.teaser_teaser__FDajW",
				Title:        ".teaser_title__hDeCG",
				Link:         ".teaser_link__fxVFQ",
				Author:       ".teaser_author__LWTRi",
				Cover:        ".teaser_coverImage__YMrBt",
				Rating:       ".teaser-footer_rating__TeVOA",
				DetailCover:  ".product-top_cover__Pth8B",
				DetailRating: ".StarIcon__Label-sc-6cf2a375-2",
				Description:  ".description_description__6gcfq",
				Collections:  ".collections_list__09q3I li a",
				DetailsRow:   "tr",
				DetailsValue: "td:last-child",
			},
		},
		Description: DescriptionConfig{
			AddBacklink:  true,
			BacklinkText: "Audioteka link",
		},
		Pipeline: PipelineConfig{
			MaxCandidates:  20,
			MaxConcurrency: 8,
			RequestTimeout: 30 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:      20 * time.Second,
			UserAgent:    DefaultUserAgent,
			Burst:        1,
			MaxBodyBytes: 10 << 20,
			Browser: BrowserConfig{
				Headless:  true,
				WaitDelay: time.Second,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from an optional YAML file followed by
// environment overrides. An empty filename skips the file.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromBytes parses YAML on top of the defaults and validates the
// result. Environment overrides are not applied.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromReader is LoadFromBytes for an io.Reader.
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}
	return LoadFromBytes(data)
}

func decode(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	expanded := expandEnvironmentVariables(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// expandEnvironmentVariables replaces ${VAR} and ${VAR:-default}.
func expandEnvironmentVariables(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if value, ok := os.LookupEnv(parts[1]); ok {
			return value
		}
		return parts[2]
	})
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv applies the environment variables understood by the service.
// PORT, LANGUAGE and ADD_AUDIOTEKA_LINK_TO_DESCRIPTION keep the names
// existing deployments already set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	// gettext-aware shells export LANGUAGE too (e.g. "en_US:en"); only a
	// catalog locale replaces the configured one.
	if v, ok := lookup("LANGUAGE"); ok {
		if lang := strings.ToLower(strings.TrimSpace(v)); isSupportedLanguage(lang) {
			cfg.Catalog.Language = lang
		}
	}
	if v, ok := lookup("ADD_AUDIOTEKA_LINK_TO_DESCRIPTION"); ok && v != "" {
		cfg.Description.AddBacklink = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	if v, ok := lookup("AUDIOTEKA_BASE_URL"); ok && v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		cfg.Log.Format = v
	}
	return nil
}
