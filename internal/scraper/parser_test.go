// internal/scraper/parser_test.go
package scraper

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailsTable = `<html><body>
<table>
  <tr><td>Autor</td><td><a>Jan Kowalski</a></td></tr>
  <tr><td>Głosy</td><td><a> Anna Nowak </a><a>Piotr Zieliński</a></td></tr>
  <tr><td>Długość</td><td>3 godz. 45 min.</td></tr>
</table>
<div class="desc"><p>Hello</p></div>
<img class="cover" src="/c.jpg?w=10">
</body></html>`

func TestLabeledCell(t *testing.T) {
	doc, err := ParseHTML(detailsTable)
	require.NoError(t, err)

	cell := LabeledCell(doc.Selection, "tr", "td:last-child", "Głosy")
	assert.Equal(t, []string{"Anna Nowak", "Piotr Zieliński"}, Texts(cell, "a"))

	cell = LabeledCell(doc.Selection, "tr", "td:last-child", "Długość")
	assert.Equal(t, "3 godz. 45 min.", strings.TrimSpace(cell.Text()))
	assert.Equal(t, 1, cell.Length())

	missing := LabeledCell(doc.Selection, "tr", "td:last-child", "Wydawca")
	assert.Equal(t, 0, missing.Length())
	assert.Empty(t, Texts(missing, "a"))

	assert.Equal(t, 0, LabeledCell(doc.Selection, "tr", "td:last-child", "  ").Length())
}

func TestLabeledCell_NormalizesDiacritics(t *testing.T) {
	// "Délka" written with a combining acute accent
	doc, err := ParseHTML("<table><tr><td>De\u0301lka</td><td>5 hodin 2 minuty</td></tr></table>")
	require.NoError(t, err)

	cell := LabeledCell(doc.Selection, "tr", "td:last-child", "Délka")
	require.Equal(t, 1, cell.Length())
	assert.Equal(t, "5 hodin 2 minuty", cell.Text())
}

func TestAttrAndInnerHTML(t *testing.T) {
	doc, err := ParseHTML(detailsTable)
	require.NoError(t, err)

	src, ok := Attr(doc.Selection, ".cover", "src")
	assert.True(t, ok)
	assert.Equal(t, "/c.jpg?w=10", src)

	_, ok = Attr(doc.Selection, ".nothing", "src")
	assert.False(t, ok)

	html, ok, err := InnerHTML(doc.Selection, ".desc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>Hello</p>", html)

	_, ok, err = InnerHTML(doc.Selection, ".nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveURL(t *testing.T) {
	base, _ := url.Parse("https://audioteka.com")

	assert.Equal(t, "https://audioteka.com/pl/audiobook/hobbit", ResolveURL(base, "/pl/audiobook/hobbit"))
	assert.Equal(t, "https://cdn.example/x.jpg", ResolveURL(base, "https://cdn.example/x.jpg"))
	assert.Equal(t, "", ResolveURL(base, "   "))
	assert.Equal(t, "/relative", ResolveURL(nil, "/relative"))
}

func TestLastPathSegment(t *testing.T) {
	assert.Equal(t, "hobbit", LastPathSegment("https://audioteka.com/pl/audiobook/hobbit"))
	assert.Equal(t, "hobbit", LastPathSegment("https://audioteka.com/pl/audiobook/hobbit/"))
	assert.Equal(t, "hobbit", LastPathSegment("https://audioteka.com/pl/audiobook/hobbit?x=1"))
	assert.Equal(t, "plain", LastPathSegment("plain"))
}
