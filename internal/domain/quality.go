package domain

import "fmt"

// maxQualityIssues caps the sampled issue lines so the report stays a
// summary, not a second copy of the board.
const maxQualityIssues = 20

// QualityReport aggregates normalization outcomes for one or more cleaning
// passes. Counters sum across merges; issue lines are sampled up to the cap
// with a trailing overflow marker added by Finalize.
type QualityReport struct {
	TotalItems         int      `json:"total_items"`
	MissingValues      int      `json:"missing_values"`
	UnparseableDates   int      `json:"unparseable_dates"`
	UnparseableNumbers int      `json:"unparseable_numbers"`
	NormalizedStatuses int      `json:"normalized_statuses"`
	NormalizedText     int      `json:"normalized_text"`
	Issues             []string `json:"issues"`
	Summary            string   `json:"summary"`

	overflow  int
	finalized bool
}

// AddIssue records one human-readable issue line, dropping (but counting)
// lines beyond the cap.
func (r *QualityReport) AddIssue(line string) {
	if len(r.Issues) >= maxQualityIssues {
		r.overflow++
		return
	}
	r.Issues = append(r.Issues, line)
}

// Merge folds another pass into this report by summing counters and
// concatenating issue lines. Merge the raw per-board reports first, then
// call Finalize once.
func (r *QualityReport) Merge(other *QualityReport) {
	if other == nil {
		return
	}
	r.TotalItems += other.TotalItems
	r.MissingValues += other.MissingValues
	r.UnparseableDates += other.UnparseableDates
	r.UnparseableNumbers += other.UnparseableNumbers
	r.NormalizedStatuses += other.NormalizedStatuses
	r.NormalizedText += other.NormalizedText
	for _, line := range other.Issues {
		r.AddIssue(line)
	}
	r.overflow += other.overflow
}

// Finalize appends the overflow marker (if any lines were dropped) and
// computes the summary line. Safe to call once per report.
func (r *QualityReport) Finalize() {
	if r.finalized {
		return
	}
	r.finalized = true
	if r.overflow > 0 {
		r.Issues = append(r.Issues, fmt.Sprintf("... and %d more issues", r.overflow))
	}
	total := r.MissingValues + r.UnparseableDates + r.UnparseableNumbers
	r.Summary = fmt.Sprintf(
		"%d data quality issues found across %d items: %d missing values, %d unparseable dates, %d unparseable numbers.",
		total, r.TotalItems, r.MissingValues, r.UnparseableDates, r.UnparseableNumbers,
	)
}
