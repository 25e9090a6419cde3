// cmd/audiotekameta/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div class="adtk-item teaser_teaser__FDajW" data-item-id="h1">
  <a class="teaser_link__fxVFQ" href="/pl/audiobook/hobbit"><span class="teaser_title__hDeCG">Hobbit</span></a>
  <span class="teaser_author__LWTRi">J.R.R. Tolkien</span>
</div>
</body></html>`

const detailPage = `<html><body>
<div class="description_description__6gcfq"><p>Opis</p></div>
<table><tr><td>Długość</td><td>1 godz. 5 min.</td></tr></table>
</body></html>`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "LANGUAGE", "ADD_AUDIOTEKA_LINK_TO_DESCRIPTION", "AUDIOTEKA_BASE_URL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "audiotekameta dev")
}

func TestSearchCommand(t *testing.T) {
	clearEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pl/szukaj":
			_, _ = w.Write([]byte(searchPage))
		case "/pl/audiobook/hobbit":
			_, _ = w.Write([]byte(detailPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
catalog:
  language: pl
  base_url: ${TEST_CATALOG_URL}
description:
  add_backlink: false
log:
  level: error
`), 0o600))
	t.Setenv("TEST_CATALOG_URL", srv.URL)

	out, err := runCLI(t, "search", "--config", cfgPath, "Hobbit")
	require.NoError(t, err)

	var resp struct {
		Matches []struct {
			Title       string `json:"title"`
			Author      string `json:"author"`
			Description string `json:"description"`
			Duration    int    `json:"duration"`
			Language    string `json:"language"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Hobbit", resp.Matches[0].Title)
	assert.Equal(t, "J.R.R. Tolkien", resp.Matches[0].Author)
	assert.Equal(t, "<p>Opis</p>", resp.Matches[0].Description)
	assert.Equal(t, 65, resp.Matches[0].Duration)
	assert.Equal(t, "polish", resp.Matches[0].Language)
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	_, err := runCLI(t, "search")
	assert.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig("", overrides{port: 8080, language: "cz"})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "cz", cfg.Catalog.Language)

	_, err = loadConfig("", overrides{language: "de"})
	assert.Error(t, err)
}

func TestNewApp_BrowserFetcher(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig("", overrides{})
	require.NoError(t, err)
	cfg.Fetch.Browser.Enabled = true

	a, err := newApp(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	defer a.Close()
	assert.Len(t, a.closers, 1, "chrome is started lazily and released on close")
	assert.NotNil(t, a.provider)
}
