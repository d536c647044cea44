package query

import (
	"testing"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

func dealsProfile(t *testing.T) domain.BoardProfile {
	t.Helper()
	profile, ok := domain.ProfileFor(domain.BoardDeals)
	if !ok {
		t.Fatalf("deals profile missing")
	}
	return profile
}

func sampleDeals() []domain.CleanedItem {
	return []domain.CleanedItem{
		{ID: "1", Name: "Solar Survey", Columns: map[string]any{
			"Sector/service":       "Renewable Energy",
			"Deal Status":          "Open",
			"Tentative Close Date": "2026-01-15",
			"Masked Deal value":    5_000_000.0,
		}},
		{ID: "2", Name: "Mine Mapping", Columns: map[string]any{
			"Sector/service":       "Mining",
			"Deal Status":          "Closed Won",
			"Tentative Close Date": "2026-03-01",
			"Masked Deal value":    12_000_000.0,
		}},
		{ID: "3", Name: "City Model", Columns: map[string]any{
			"Sector/service":       "Real Estate",
			"Deal Status":          "Open",
			"Tentative Close Date": nil,
			"Masked Deal value":    2_000_000.0,
		}},
	}
}

func TestApplyFiltersSectorSubstring(t *testing.T) {
	got := ApplyFilters(sampleDeals(), domain.Filters{Sector: domain.StringList{"energy"}}, dealsProfile(t))
	if len(got) != 1 || got[0].Name != "Solar Survey" {
		t.Fatalf("expected partial, case-insensitive sector match, got %+v", got)
	}
}

func TestApplyFiltersMultipleTermsAreOR(t *testing.T) {
	got := ApplyFilters(sampleDeals(), domain.Filters{Sector: domain.StringList{"mining", "real estate"}}, dealsProfile(t))
	if len(got) != 2 {
		t.Fatalf("expected two sector matches, got %d", len(got))
	}
}

func TestApplyFiltersComposeAsAND(t *testing.T) {
	filters := domain.Filters{
		Sector: domain.StringList{"e"}, // matches Renewable Energy and Real Estate
		Status: domain.StringList{"open"},
		DateRange: domain.DateRange{
			Start: "2026-01-01",
			End:   "2026-01-31",
		},
	}
	got := ApplyFilters(sampleDeals(), filters, dealsProfile(t))
	if len(got) != 1 || got[0].Name != "Solar Survey" {
		t.Fatalf("expected AND composition to keep only Solar Survey, got %+v", got)
	}
}

func TestApplyFiltersOrderIndependent(t *testing.T) {
	sectorOnly := domain.Filters{Sector: domain.StringList{"e"}}
	statusOnly := domain.Filters{Status: domain.StringList{"open"}}
	both := domain.Filters{Sector: sectorOnly.Sector, Status: statusOnly.Status}

	p := dealsProfile(t)
	sectorThenStatus := ApplyFilters(ApplyFilters(sampleDeals(), sectorOnly, p), statusOnly, p)
	statusThenSector := ApplyFilters(ApplyFilters(sampleDeals(), statusOnly, p), sectorOnly, p)
	combined := ApplyFilters(sampleDeals(), both, p)

	if len(sectorThenStatus) != len(statusThenSector) || len(combined) != len(sectorThenStatus) {
		t.Fatalf("AND composition must be order-independent: %d vs %d vs %d",
			len(sectorThenStatus), len(statusThenSector), len(combined))
	}
	for i := range combined {
		if combined[i].ID != sectorThenStatus[i].ID || combined[i].ID != statusThenSector[i].ID {
			t.Fatalf("result sets differ by order of application")
		}
	}
}

func TestApplyFiltersDateRangeInclusiveBounds(t *testing.T) {
	filters := domain.Filters{DateRange: domain.DateRange{Start: "2026-01-15", End: "2026-03-01"}}
	got := ApplyFilters(sampleDeals(), filters, dealsProfile(t))
	if len(got) != 2 {
		t.Fatalf("expected inclusive bounds to keep both dated items, got %d", len(got))
	}
}

func TestApplyFiltersDateRangeDropsMissingDates(t *testing.T) {
	filters := domain.Filters{DateRange: domain.DateRange{Start: "2020-01-01"}}
	got := ApplyFilters(sampleDeals(), filters, dealsProfile(t))
	for _, item := range got {
		if item.Name == "City Model" {
			t.Fatalf("item without a parseable date must be dropped once a bound is set")
		}
	}
}

func TestApplyFiltersUnparseableBoundIgnored(t *testing.T) {
	filters := domain.Filters{DateRange: domain.DateRange{Start: "next quarter"}}
	got := ApplyFilters(sampleDeals(), filters, dealsProfile(t))
	// Bound acts as absent, but the range filter still requires a date.
	if len(got) != 2 {
		t.Fatalf("expected dated items to survive an unparseable bound, got %d", len(got))
	}
}

func TestApplyFiltersEmptyIsIdentity(t *testing.T) {
	items := sampleDeals()
	got := ApplyFilters(items, domain.Filters{}, dealsProfile(t))
	if len(got) != len(items) {
		t.Fatalf("empty filters must keep all items, got %d", len(got))
	}
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Fatalf("input order must be preserved")
		}
	}
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	items := sampleDeals()
	ApplyFilters(items, domain.Filters{Sector: domain.StringList{"mining"}}, dealsProfile(t))
	if items[0].Name != "Solar Survey" || len(items) != 3 {
		t.Fatalf("input slice was mutated")
	}
}
