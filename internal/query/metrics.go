package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

// listItemsCap bounds the list_items detail dump so payloads to the
// synthesis call cannot grow with board size.
const listItemsCap = 50

// GroupStat is a per-bucket breakdown for group_by and pipeline_summary.
type GroupStat struct {
	Count               int     `json:"count"`
	TotalValue          float64 `json:"total_value"`
	TotalValueFormatted string  `json:"total_value_formatted"`
}

// OverdueItem is one work item past its end date without a closed status.
type OverdueItem struct {
	Name    string `json:"name"`
	EndDate string `json:"end_date"`
	Status  string `json:"status"`
	Value   string `json:"value"`
}

// closedStatuses excludes an item from the overdue check.
var closedStatuses = map[string]bool{
	"closed":      true,
	"closed won":  true,
	"closed lost": true,
	"completed":   true,
}

// ComputeMetrics computes each requested metric tag independently over the
// filtered items. Unrequested tags are absent from the result. Numeric
// results carry a companion formatted display string.
func ComputeMetrics(items []domain.CleanedItem, metrics []string, profile domain.BoardProfile, now time.Time) domain.MetricsResult {
	results := domain.MetricsResult{}

	var values []float64
	for _, item := range items {
		if v, ok := numericValue(item.Columns[profile.ValueColumn]); ok {
			values = append(values, v)
		}
	}

	for _, metric := range metrics {
		switch metric {
		case domain.MetricTotalValue:
			total := 0.0
			for _, v := range values {
				total += v
			}
			results["total_value"] = total
			results["total_value_formatted"] = FormatAmount(total)

		case domain.MetricCount:
			results["count"] = len(items)

		case domain.MetricAverageValue:
			avg := 0.0
			if len(values) > 0 {
				total := 0.0
				for _, v := range values {
					total += v
				}
				avg = total / float64(len(values))
			}
			results["average_value"] = avg
			results["average_value_formatted"] = FormatAmount(avg)

		case domain.MetricGroupBy:
			results["groups"] = bucketBy(items, profile.SectorColumn, profile.ValueColumn)

		case domain.MetricPipelineSummary:
			results["pipeline"] = bucketBy(items, profile.StageColumn, profile.ValueColumn)

		case domain.MetricOverdueCheck:
			overdue := overdueItems(items, profile, now)
			results["overdue_items"] = overdue
			results["overdue_count"] = len(overdue)

		case domain.MetricListItems:
			results["items"] = listItems(items)
		}
	}

	return results
}

func bucketBy(items []domain.CleanedItem, keyColumn, valueColumn string) map[string]*GroupStat {
	buckets := make(map[string]*GroupStat)
	for _, item := range items {
		key := "Unknown"
		if v := item.Columns[keyColumn]; v != nil {
			if s := strings.TrimSpace(stringValue(v)); s != "" {
				key = s
			}
		}
		stat, ok := buckets[key]
		if !ok {
			stat = &GroupStat{}
			buckets[key] = stat
		}
		stat.Count++
		if v, ok := numericValue(item.Columns[valueColumn]); ok {
			stat.TotalValue += v
		}
	}
	for _, stat := range buckets {
		stat.TotalValueFormatted = FormatAmount(stat.TotalValue)
	}
	return buckets
}

// overdueItems flags items whose end date is strictly before now and whose
// status, when present, is not one of the closed/completed set.
func overdueItems(items []domain.CleanedItem, profile domain.BoardProfile, now time.Time) []OverdueItem {
	overdue := []OverdueItem{}
	for _, item := range items {
		endRaw := item.Columns[profile.DateColumn]
		if endRaw == nil {
			continue
		}
		endDate := stringValue(endRaw)
		d, err := time.Parse(isoDate, endDate)
		if err != nil || !d.Before(now) {
			continue
		}

		status := ""
		if v := item.Columns[profile.StatusColumn]; v != nil {
			status = stringValue(v)
		}
		if status == "" || closedStatuses[strings.ToLower(status)] {
			continue
		}

		value := 0.0
		if v, ok := numericValue(item.Columns[profile.ValueColumn]); ok {
			value = v
		}
		overdue = append(overdue, OverdueItem{
			Name:    item.Name,
			EndDate: endDate,
			Status:  status,
			Value:   FormatAmount(value),
		})
	}
	return overdue
}

// listItems reduces up to the first listItemsCap items to their name plus
// all non-null columns.
func listItems(items []domain.CleanedItem) []map[string]any {
	summaries := []map[string]any{}
	for i, item := range items {
		if i >= listItemsCap {
			break
		}
		summary := map[string]any{"name": item.Name}
		for col, val := range item.Columns {
			if val != nil {
				summary[col] = val
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// numericValue accepts the cleaner's float64 output, plus numeric strings
// from unclassified columns.
func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
