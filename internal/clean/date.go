package clean

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	ordinalPattern = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)`)
)

// dateLayouts are tried in order; the order resolves ambiguous strings
// day-first (27/02 and 02/27 both land on Feb 27).
var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"1-2-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2/1/06",
	"1/2/06",
}

// NormalizeDate converts a raw date value to ISO YYYY-MM-DD. Ordinal
// suffixes ("27th") are stripped before parsing. Returns ok=false for
// blank or unparseable input; never panics.
func NormalizeDate(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}

	// Already ISO, straight from the board.
	if isoDatePattern.MatchString(v) {
		return v, true
	}

	cleaned := ordinalPattern.ReplaceAllString(v, "$1")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	// Fallback: general parser, biased day-first like the layout table.
	if t, err := dateparse.ParseAny(cleaned, dateparse.PreferMonthFirst(false)); err == nil {
		return t.Format("2006-01-02"), true
	}
	return "", false
}
