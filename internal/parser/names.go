package parser

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanText decodes entities and strips any markup from a free-text value.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	// StrictPolicy re-escapes what it keeps, so decode once more afterwards
	s = html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// HumanizeName turns an identifier such as "FS22_grassFermented" or "SUGARBEET_CUT"
// into a display name ("Grass Fermented", "Sugarbeet Cut").
func HumanizeName(id string) string {
	id = strings.TrimSpace(id)
	id = stripKnownPrefix(id)

	caser := cases.Title(language.English)

	var words []string
	for _, part := range strings.FieldsFunc(id, isSeparator) {
		for _, token := range splitCaseBoundaries(part) {
			words = append(words, caser.String(strings.ToLower(token)))
		}
	}
	if len(words) == 0 {
		return id
	}
	return strings.Join(words, " ")
}

func stripKnownPrefix(id string) string {
	for {
		stripped := false
		for _, prefix := range KnownNamePrefixes {
			if len(id) > len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
				id = id[len(prefix):]
				stripped = true
			}
		}
		if !stripped {
			return id
		}
	}
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// splitCaseBoundaries splits "grassFermented" into ["grass", "Fermented"] and
// "MPBalers" into ["MP", "Balers"]. All-caps tokens stay whole.
func splitCaseBoundaries(s string) []string {
	runes := []rune(s)
	var tokens []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		lowerToUpper := unicode.IsLower(prev) && unicode.IsUpper(cur)
		acronymEnd := unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if lowerToUpper || acronymEnd {
			tokens = append(tokens, string(runes[start:i]))
			start = i
		}
	}
	return append(tokens, string(runes[start:]))
}
