package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Metric tags the planning service may request.
const (
	MetricTotalValue      = "total_value"
	MetricCount           = "count"
	MetricAverageValue    = "average_value"
	MetricGroupBy         = "group_by"
	MetricPipelineSummary = "pipeline_summary"
	MetricOverdueCheck    = "overdue_check"
	MetricListItems       = "list_items"
)

// StringList accepts either a JSON scalar string or an array of strings.
// The planning model emits both shapes depending on the question.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			*l = nil
		} else {
			*l = StringList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("string or string array expected: %w", err)
	}
	var out StringList
	for _, s := range many {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// DateRange bounds are ISO dates; an empty string means unbounded.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Filters is the declarative filter spec of a query plan. Absent filters
// are no-ops.
type Filters struct {
	Sector    StringList `json:"sector"`
	Status    StringList `json:"status"`
	DateRange DateRange  `json:"date_range"`
}

// QueryPlan is the tagged union returned by the planning call: either a
// clarification request or an executable plan.
type QueryPlan struct {
	NeedsClarification    bool   `json:"needs_clarification,omitempty"`
	ClarificationQuestion string `json:"clarification_question,omitempty"`

	BoardsToQuery []BoardTag `json:"boards_to_query,omitempty"`
	Filters       Filters    `json:"filters"`
	Metrics       []string   `json:"metrics,omitempty"`
	AnalysisType  string     `json:"analysis_type,omitempty"`
	Explanation   string     `json:"explanation,omitempty"`
}

const defaultClarification = "Could you be more specific about what you'd like to know?"

// Validate checks the parsed payload against the two accepted shapes and
// fills the executable-plan defaults. A payload that is neither a
// clarification nor a plan naming at least one known board is rejected.
func (p *QueryPlan) Validate() error {
	if p.NeedsClarification {
		if strings.TrimSpace(p.ClarificationQuestion) == "" {
			p.ClarificationQuestion = defaultClarification
		}
		return nil
	}

	var boards []BoardTag
	for _, tag := range p.BoardsToQuery {
		if KnownBoard(tag) {
			boards = append(boards, tag)
		}
	}
	if len(boards) == 0 {
		return fmt.Errorf("plan names no known board (got %v)", p.BoardsToQuery)
	}
	p.BoardsToQuery = boards

	if len(p.Metrics) == 0 {
		p.Metrics = []string{MetricCount, MetricTotalValue}
	}
	return nil
}

// WantsMetric reports whether the plan requested the given metric tag.
func (p *QueryPlan) WantsMetric(tag string) bool {
	for _, m := range p.Metrics {
		if m == tag {
			return true
		}
	}
	return false
}
