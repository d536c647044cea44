package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

var testNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func TestComputeMetricsTotalCountAverage(t *testing.T) {
	items := sampleDeals()
	got := ComputeMetrics(items, []string{domain.MetricTotalValue, domain.MetricCount, domain.MetricAverageValue}, dealsProfile(t), testNow)

	if got["total_value"] != 19_000_000.0 {
		t.Fatalf("expected total_value 19000000, got %v", got["total_value"])
	}
	if got["total_value_formatted"] != "₹1.9Cr" {
		t.Fatalf("expected formatted total ₹1.9Cr, got %v", got["total_value_formatted"])
	}
	if got["count"] != 3 {
		t.Fatalf("expected count 3, got %v", got["count"])
	}
	wantAvg := 19_000_000.0 / 3
	if got["average_value"] != wantAvg {
		t.Fatalf("expected average %v, got %v", wantAvg, got["average_value"])
	}
}

func TestComputeMetricsOnlyRequestedKeys(t *testing.T) {
	got := ComputeMetrics(sampleDeals(), []string{domain.MetricCount}, dealsProfile(t), testNow)
	if _, ok := got["total_value"]; ok {
		t.Fatalf("unrequested metric must be absent from result")
	}
	if got["count"] != 3 {
		t.Fatalf("expected count 3, got %v", got["count"])
	}
}

func TestComputeMetricsGroupBy(t *testing.T) {
	items := append(sampleDeals(), domain.CleanedItem{
		ID: "4", Name: "No Sector", Columns: map[string]any{
			"Sector/service":    nil,
			"Masked Deal value": 1_000_000.0,
		},
	})
	got := ComputeMetrics(items, []string{domain.MetricGroupBy}, dealsProfile(t), testNow)

	groups, ok := got["groups"].(map[string]*GroupStat)
	if !ok {
		t.Fatalf("expected groups map, got %T", got["groups"])
	}
	if groups["Mining"].Count != 1 || groups["Mining"].TotalValue != 12_000_000.0 {
		t.Fatalf("unexpected Mining bucket: %+v", groups["Mining"])
	}
	if groups["Mining"].TotalValueFormatted != "₹1.2Cr" {
		t.Fatalf("expected formatted bucket total, got %q", groups["Mining"].TotalValueFormatted)
	}
	if groups["Unknown"] == nil || groups["Unknown"].Count != 1 {
		t.Fatalf("items without a group key must land in Unknown: %+v", groups["Unknown"])
	}

	// Bucket counts sum back to the item count.
	total := 0
	for _, stat := range groups {
		total += stat.Count
	}
	if total != len(items) {
		t.Fatalf("bucket counts sum to %d, want %d", total, len(items))
	}
}

func TestComputeMetricsOverdueCheck(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := testNow.AddDate(0, 0, 1).Format("2006-01-02")
	profile, _ := domain.ProfileFor(domain.BoardWorkOrders)

	items := []domain.CleanedItem{
		{Name: "Late Survey", Columns: map[string]any{
			profile.DateColumn:   yesterday,
			profile.StatusColumn: "In Progress",
			profile.ValueColumn:  500_000.0,
		}},
		{Name: "Done Survey", Columns: map[string]any{
			profile.DateColumn:   yesterday,
			profile.StatusColumn: "Completed",
		}},
		{Name: "Future Survey", Columns: map[string]any{
			profile.DateColumn:   tomorrow,
			profile.StatusColumn: "In Progress",
		}},
		{Name: "No Status", Columns: map[string]any{
			profile.DateColumn: yesterday,
		}},
	}

	got := ComputeMetrics(items, []string{domain.MetricOverdueCheck}, profile, testNow)
	overdue, ok := got["overdue_items"].([]OverdueItem)
	if !ok {
		t.Fatalf("expected overdue_items slice, got %T", got["overdue_items"])
	}
	if got["overdue_count"] != 1 || len(overdue) != 1 {
		t.Fatalf("expected exactly one overdue item, got %v", got["overdue_count"])
	}
	if overdue[0].Name != "Late Survey" || overdue[0].Status != "In Progress" {
		t.Fatalf("unexpected overdue item: %+v", overdue[0])
	}
	if overdue[0].Value != "₹5.0L" {
		t.Fatalf("expected formatted value ₹5.0L, got %q", overdue[0].Value)
	}
}

func TestComputeMetricsListItemsCapped(t *testing.T) {
	items := make([]domain.CleanedItem, 60)
	for i := range items {
		items[i] = domain.CleanedItem{
			Name: fmt.Sprintf("Item %d", i),
			Columns: map[string]any{
				"Masked Deal value": float64(i),
				"Deal Status":       nil,
			},
		}
	}
	got := ComputeMetrics(items, []string{domain.MetricListItems}, dealsProfile(t), testNow)
	listed, ok := got["items"].([]map[string]any)
	if !ok {
		t.Fatalf("expected items slice, got %T", got["items"])
	}
	if len(listed) != listItemsCap {
		t.Fatalf("expected list capped at %d, got %d", listItemsCap, len(listed))
	}
	if _, present := listed[0]["Deal Status"]; present {
		t.Fatalf("null columns must be omitted from item summaries")
	}
	if listed[0]["name"] != "Item 0" {
		t.Fatalf("expected first item first, got %v", listed[0]["name"])
	}
}

func TestComputeMetricsSkipsNullValues(t *testing.T) {
	items := []domain.CleanedItem{
		{Name: "A", Columns: map[string]any{"Masked Deal value": 12_000_000.0}},
		{Name: "B", Columns: map[string]any{"Masked Deal value": 5_000_000.0}},
		{Name: "C", Columns: map[string]any{"Masked Deal value": nil}},
	}
	got := ComputeMetrics(items, []string{domain.MetricTotalValue, domain.MetricCount}, dealsProfile(t), testNow)

	if got["total_value"] != 17_000_000.0 {
		t.Fatalf("expected null values skipped in sum, got %v", got["total_value"])
	}
	if got["total_value_formatted"] != "₹1.7Cr" {
		t.Fatalf("expected ₹1.7Cr, got %v", got["total_value_formatted"])
	}
	if got["count"] != 3 {
		t.Fatalf("count covers all items regardless of value, got %v", got["count"])
	}
}

func TestComputeMetricsEmptyInput(t *testing.T) {
	got := ComputeMetrics(nil, []string{domain.MetricTotalValue, domain.MetricAverageValue, domain.MetricCount}, dealsProfile(t), testNow)
	if got["total_value"] != 0.0 {
		t.Fatalf("expected zero total on empty input, got %v", got["total_value"])
	}
	if got["average_value"] != 0.0 {
		t.Fatalf("expected zero average on empty input, got %v", got["average_value"])
	}
	if got["count"] != 0 {
		t.Fatalf("expected zero count, got %v", got["count"])
	}
}
