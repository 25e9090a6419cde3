// internal/scraper/parser.go
package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// ParseHTML builds a document from an HTML string.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Text returns the trimmed, concatenated text of every element matching
// selector inside scope.
func Text(scope *goquery.Selection, selector string) string {
	return strings.TrimSpace(scope.Find(selector).Text())
}

// Texts returns the trimmed text of each element matching selector, in
// document order. Blank entries are kept so callers decide what to drop.
func Texts(scope *goquery.Selection, selector string) []string {
	sel := scope.Find(selector)
	items := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		items = append(items, strings.TrimSpace(s.Text()))
	})
	return items
}

// Attr returns the named attribute of the first match.
func Attr(scope *goquery.Selection, selector, name string) (string, bool) {
	sel := scope.Find(selector)
	if sel.Length() == 0 {
		return "", false
	}
	return sel.First().Attr(name)
}

// InnerHTML returns the inner HTML of the first match. ok is false when
// nothing matches.
func InnerHTML(scope *goquery.Selection, selector string) (html string, ok bool, err error) {
	sel := scope.Find(selector)
	if sel.Length() == 0 {
		return "", false, nil
	}
	html, err = sel.First().Html()
	if err != nil {
		return "", true, fmt.Errorf("failed to extract HTML: %w", err)
	}
	return html, true, nil
}

// LabeledCell finds the first row (rowSelector) whose text contains label
// and returns its value cell (valueSelector, matched inside the row).
// Labels are compared after NFC normalization so precomposed and
// decomposed diacritics match. The returned selection is empty when no
// row carries the label.
func LabeledCell(scope *goquery.Selection, rowSelector, valueSelector, label string) *goquery.Selection {
	want := norm.NFC.String(strings.TrimSpace(label))
	if want == "" {
		return scope.Find(rowSelector).Slice(0, 0)
	}

	row := scope.Find(rowSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(norm.NFC.String(s.Text()), want)
	}).First()

	return row.Find(valueSelector)
}

// ResolveURL resolves ref against base. Empty refs resolve to "".
func ResolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

// LastPathSegment returns the final non-empty path segment of rawURL.
func LastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	path := rawURL
	if err == nil {
		path = u.Path
	}
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
