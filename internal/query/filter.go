// Package query turns a declarative plan (filters + metric tags) into
// concrete computation over cleaned board items.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

const isoDate = "2006-01-02"

// ApplyFilters applies the plan's sector, status and date-range filters over
// cleaned items. Filters compose as logical AND; an absent filter is a
// no-op. Input order is preserved and the input slice is never mutated.
func ApplyFilters(items []domain.CleanedItem, filters domain.Filters, profile domain.BoardProfile) []domain.CleanedItem {
	filtered := items

	if len(filters.Sector) > 0 {
		filtered = filterBySubstring(filtered, profile.SectorColumn, filters.Sector)
	}
	if len(filters.Status) > 0 {
		filtered = filterBySubstring(filtered, profile.StatusColumn, filters.Status)
	}
	if filters.DateRange.Start != "" || filters.DateRange.End != "" {
		filtered = filterByDateRange(filtered, profile.DateColumn, filters.DateRange)
	}

	return filtered
}

// filterBySubstring keeps items whose column value contains any of the given
// terms, case-insensitively. Substring rather than exact match, so partial
// user phrasing ("energy") still hits ("Renewable Energy").
func filterBySubstring(items []domain.CleanedItem, column string, terms []string) []domain.CleanedItem {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		lowered = append(lowered, strings.ToLower(t))
	}

	var out []domain.CleanedItem
	for _, item := range items {
		v := item.Columns[column]
		if v == nil {
			continue
		}
		haystack := strings.ToLower(stringValue(v))
		for _, term := range lowered {
			if strings.Contains(haystack, term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// filterByDateRange keeps items whose date column parses as ISO and falls
// inside the inclusive bounds. Items without a parseable date are dropped
// once either bound is present. An unparseable bound is ignored as if
// absent.
func filterByDateRange(items []domain.CleanedItem, column string, r domain.DateRange) []domain.CleanedItem {
	var start, end time.Time
	var hasStart, hasEnd bool
	if r.Start != "" {
		if t, err := time.Parse(isoDate, r.Start); err == nil {
			start, hasStart = t, true
		}
	}
	if r.End != "" {
		if t, err := time.Parse(isoDate, r.End); err == nil {
			end, hasEnd = t, true
		}
	}

	var out []domain.CleanedItem
	for _, item := range items {
		v := item.Columns[column]
		if v == nil {
			continue
		}
		d, err := time.Parse(isoDate, stringValue(v))
		if err != nil {
			continue
		}
		if hasStart && d.Before(start) {
			continue
		}
		if hasEnd && d.After(end) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
