// Package clean normalizes raw board values into canonical typed values and
// reports on data quality while doing so. Normalizers degrade to null on
// malformed input; nothing in this package raises for bad data.
package clean

import (
	"fmt"
	"strings"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

// CleanBoard applies the classified normalizer to every item/column pair of
// one board and accumulates a quality report. The returned report is raw:
// callers merge reports across boards and then call Finalize once.
func CleanBoard(items []domain.RawItem, columns ColumnMap) ([]domain.CleanedItem, *domain.QualityReport) {
	report := &domain.QualityReport{TotalItems: len(items)}
	cleaned := make([]domain.CleanedItem, 0, len(items))

	for _, item := range items {
		ci := domain.CleanedItem{
			ID:      item.ID,
			Name:    item.Name,
			Group:   item.Group,
			Columns: make(map[string]any, len(item.Columns)),
		}

		for title, raw := range item.Columns {
			if strings.TrimSpace(raw) == "" {
				report.MissingValues++
				ci.Columns[title] = nil
				continue
			}

			switch columns.Classify(title) {
			case ClassDate:
				if v, ok := NormalizeDate(raw); ok {
					ci.Columns[title] = v
				} else {
					report.UnparseableDates++
					report.AddIssue(fmt.Sprintf("Unparseable date in '%s' for item '%s': '%s'", title, item.Name, raw))
					ci.Columns[title] = nil
				}

			case ClassCurrency:
				if v, ok := NormalizeCurrency(raw); ok {
					ci.Columns[title] = v
				} else {
					report.UnparseableNumbers++
					report.AddIssue(fmt.Sprintf("Unparseable number in '%s' for item '%s': '%s'", title, item.Name, raw))
					ci.Columns[title] = nil
				}

			case ClassStatus:
				v, _ := NormalizeStatus(raw)
				if v != raw {
					report.NormalizedStatuses++
				}
				ci.Columns[title] = v

			case ClassText:
				v := NormalizeText(raw)
				if v != raw {
					report.NormalizedText++
				}
				ci.Columns[title] = v

			default:
				ci.Columns[title] = raw
			}
		}

		cleaned = append(cleaned, ci)
	}

	return cleaned, report
}
