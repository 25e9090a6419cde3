// pkg/api/api_test.go
package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/audiotekameta/internal/catalog"
)

func enrichedRecord() catalog.BookRecord {
	duration := 632
	publisher := "Audioteka"
	kind := "Audiobook"
	rating := 4.6
	return catalog.BookRecord{
		SearchCandidate: catalog.SearchCandidate{
			ID:      "abc123",
			Title:   "Hobbit",
			Authors: []string{"J.R.R. Tolkien", "Ktoś Inny"},
			URL:     "https://audioteka.com/pl/audiobook/hobbit",
			Cover:   "https://static.audioteka.com/covers/hobbit.jpg",
			Rating:  &rating,
			Source:  catalog.AudiotekaSource,
		},
		Narrator:    "Andrzej Seweryn",
		Duration:    &duration,
		Publisher:   &publisher,
		Type:        &kind,
		Genres:      []string{"Fantastyka"},
		Tags:        []string{"Śródziemie"},
		Series:      []string{},
		Description: "<p>Opis</p>",
		Languages:   []string{"polish"},
		Identifiers: map[string]string{"audioteka": "abc123"},
		Enriched:    true,
	}
}

func TestNewSearchResponse_Enriched(t *testing.T) {
	resp := NewSearchResponse([]catalog.BookRecord{enrichedRecord()})
	require.Len(t, resp.Matches, 1)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"matches":[{
		"title":"Hobbit",
		"author":"J.R.R. Tolkien, Ktoś Inny",
		"narrator":"Andrzej Seweryn",
		"publisher":"Audioteka",
		"description":"<p>Opis</p>",
		"cover":"https://static.audioteka.com/covers/hobbit.jpg",
		"genres":["Fantastyka"],
		"tags":["Śródziemie"],
		"series":[],
		"language":"polish",
		"duration":632
	}]}`, string(data))
}

func TestNewSearchResponse_FallbackRecord(t *testing.T) {
	c := enrichedRecord().SearchCandidate
	c.Cover = ""

	data, err := json.Marshal(NewSearchResponse([]catalog.BookRecord{{SearchCandidate: c}}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"matches":[{"title":"Hobbit","author":"J.R.R. Tolkien, Ktoś Inny"}]}`, string(data),
		"a record that was never enriched carries no optional fields")
}

func TestNewSearchResponse_Empty(t *testing.T) {
	data, err := json.Marshal(NewSearchResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"matches":[]}`, string(data))
}

func TestNewMatch_Identifiers(t *testing.T) {
	r := enrichedRecord()
	r.Identifiers["isbn"] = "9788375780635"
	r.Identifiers["asin"] = "B00TEST"
	r.Series = []string{"Władca Pierścieni"}
	r.PublishedDate = "2012-09-21"

	m := NewMatch(r)
	assert.Equal(t, "9788375780635", m.ISBN)
	assert.Equal(t, "B00TEST", m.ASIN)
	assert.Equal(t, "2012", m.PublishedYear)
	require.NotNil(t, m.Series)
	assert.Equal(t, []SeriesRef{{Series: "Władca Pierścieni"}}, *m.Series)
}

func TestNewMatch_ZeroDurationIsKept(t *testing.T) {
	r := enrichedRecord()
	zero := 0
	r.Duration = &zero

	data, err := json.Marshal(NewMatch(r))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"duration":0`)
}

func TestPublishedYear(t *testing.T) {
	assert.Equal(t, "2012", PublishedYear("2012-09-21"))
	assert.Equal(t, "2019", PublishedYear("2019-03-01T10:00:00Z"))
	assert.Equal(t, "2001", PublishedYear("2001"))
	assert.Equal(t, "1999", PublishedYear("31.12.1999"))
	assert.Equal(t, "", PublishedYear(""))
	assert.Equal(t, "", PublishedYear("wkrótce"))
}
