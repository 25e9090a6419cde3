// internal/catalog/normalize.go
package catalog

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Whitespace class covering Unicode spaces such as NBSP, which the catalog
// uses between numbers and unit words.
const ws = `[\s\p{Z}\x{FEFF}]`

// An optional "<int> <unit>" segment followed by a mandatory one.
var durationPattern = regexp.MustCompile(
	`^(?:(\d+)` + ws + `+[^\d\s\p{Z}\x{FEFF}]+)?` + ws + `*(?:(\d+)` + ws + `+([^\d\s\p{Z}\x{FEFF}]+))$`,
)

// ParseDuration converts a duration cell such as "3 godz. 45 min." into
// total minutes. ok is false when the text does not have the
// "[<int> <unit>] <int> <unit>" shape. A lone segment is read as minutes
// unless its unit is one of hourUnits, in which case the text is treated
// as unparseable: hour-only values have no minute segment.
func ParseDuration(s string, hourUnits []string) (minutes int, ok bool) {
	s = strings.TrimFunc(s, isSpace)
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	if m[1] == "" && isHourUnit(m[3], hourUnits) {
		return 0, false
	}

	hours := atoiOrZero(m[1])
	mins := atoiOrZero(m[2])
	if hours > (math.MaxInt-mins)/60 {
		hours = 0
	}
	return hours*60 + mins, true
}

func isHourUnit(unit string, hourUnits []string) bool {
	unit = strings.TrimSuffix(strings.ToLower(unit), ".")
	for _, u := range hourUnits {
		if unit == u {
			return true
		}
	}
	return false
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// CleanCoverURL strips the query string from a cover URL.
func CleanCoverURL(u string) string {
	before, _, _ := strings.Cut(u, "?")
	return before
}

var (
	scriptPattern = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframePattern = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
)

// SanitizeDescription removes <script> and <iframe> elements, including
// their content up to the first matching closing tag. An opening tag
// without a closing tag is left alone.
func SanitizeDescription(s string) string {
	for {
		out := scriptPattern.ReplaceAllString(s, "")
		out = iframePattern.ReplaceAllString(out, "")
		if out == s {
			return out
		}
		s = out
	}
}

// WithBacklink prefixes a description with a link to the detail page.
func WithBacklink(description, pageURL, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a><br><br>%s`, html.EscapeString(pageURL), text, description)
}

var ratingPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:[.,]\d*)?|[.,]\d+)`)

// MaxRating is the top of the catalog's star scale.
const MaxRating = 5.0

// ParseRating reads the leading number of a rating label such as "4,5" or
// "4.5 (120)". It returns nil when there is no number, when the value is
// zero (unrated) or when it falls outside the star scale.
func ParseRating(s string) *float64 {
	num := ratingPattern.FindString(strings.TrimFunc(s, isSpace))
	if num == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(num, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || v == 0 || v < 0 || v > MaxRating {
		return nil
	}
	return &v
}
