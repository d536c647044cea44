package domain

// BoardTag identifies one of the tracked Monday.com boards.
type BoardTag string

const (
	BoardDeals      BoardTag = "deals"
	BoardWorkOrders BoardTag = "workorders"
)

// BoardProfile names the columns that carry filter/metric semantics on a
// board. New boards are added here (or via config) rather than by touching
// the filter and metrics engines.
type BoardProfile struct {
	Tag          BoardTag
	SectorColumn string
	StatusColumn string
	DateColumn   string
	ValueColumn  string
	StageColumn  string

	// PromptValueColumns are enumerated in the planning prompt so the
	// reasoning service maps user phrasing onto real data values.
	PromptValueColumns []string
}

var boardProfiles = map[BoardTag]BoardProfile{
	BoardDeals: {
		Tag:          BoardDeals,
		SectorColumn: "Sector/service",
		StatusColumn: "Deal Status",
		DateColumn:   "Tentative Close Date",
		ValueColumn:  "Masked Deal value",
		StageColumn:  "Deal Stage",
		PromptValueColumns: []string{
			"Sector/service", "Deal Status", "Deal Stage", "Closure Probability", "Product deal",
		},
	},
	BoardWorkOrders: {
		Tag:          BoardWorkOrders,
		SectorColumn: "Sector",
		StatusColumn: "Execution Status",
		DateColumn:   "Probable End Date",
		ValueColumn:  "Amount in Rupees (Excl of GST) (Masked)",
		StageColumn:  "Execution Status",
		PromptValueColumns: []string{
			"Sector", "Execution Status", "Nature of Work", "Type of Work", "Billing Status",
		},
	},
}

// ProfileFor returns the column profile for a board tag.
func ProfileFor(tag BoardTag) (BoardProfile, bool) {
	p, ok := boardProfiles[tag]
	return p, ok
}

// KnownBoard reports whether the tag names a configured board.
func KnownBoard(tag BoardTag) bool {
	_, ok := boardProfiles[tag]
	return ok
}

// AllBoards returns the configured board tags in a stable order.
func AllBoards() []BoardTag {
	return []BoardTag{BoardDeals, BoardWorkOrders}
}
