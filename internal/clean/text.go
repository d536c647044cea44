package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// titleCase constructs a fresh caser per call; cases.Caser is not safe for
// concurrent use and cleaning passes run per request.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// NormalizeText trims, collapses internal whitespace runs to one space and
// title-cases, so later substring filters are casing-safe. Blank input
// returns "".
func NormalizeText(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	v = whitespaceRun.ReplaceAllString(v, " ")
	return titleCase(v)
}
