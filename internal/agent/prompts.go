package agent

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

const planningPromptTemplate = `You are a query planner for a business intelligence system connected to Monday.com boards.

You have access to two boards:

DEALS BOARD (board_id: %s):
%s

WORK ORDERS BOARD (board_id: %s):
%s

AVAILABLE DATA VALUES:
%s

Given a user question, return a JSON plan specifying how to answer it.

RULES:
1. Return ONLY valid JSON, no markdown, no extra text, no code fences.
2. If you can answer the question, return a query plan with this structure:
{
  "boards_to_query": ["deals", "workorders"],
  "filters": {
    "sector": null,
    "status": null,
    "date_range": {
      "start": null,
      "end": null
    }
  },
  "metrics": ["total_value", "count", "average_value"],
  "analysis_type": "summary|comparison|trend|detail|risk",
  "explanation": "Brief explanation of what data is needed and why"
}
3. If the question is too vague or ambiguous to create a good plan, return:
{
  "needs_clarification": true,
  "clarification_question": "Your specific question to the user to clarify their intent"
}
   Use this ONLY when the query is genuinely ambiguous, for example "tell me something" or "help me". Do NOT ask for clarification on normal business questions like "how is our pipeline?", just answer those.
4. For "boards_to_query", include only boards relevant to the question.
5. For "filters", set values only if the user mentions specific sectors, statuses, or date ranges. Use null for unspecified filters.
6. IMPORTANT: For sector filters, you MUST use the EXACT sector names from the AVAILABLE DATA VALUES listed above. Map user terms to the closest matching sector (e.g. "energy" maps to "Renewables" or "Powerline").
7. For "metrics", list what calculations are needed. Options: "total_value", "count", "average_value", "list_items", "group_by", "overdue_check", "pipeline_summary".
8. For "analysis_type": use "summary" for overview questions, "comparison" for comparing segments, "trend" for time-based analysis, "detail" for specific item lists, "risk" for stalling/overdue analysis.
9. Today's date is %s. Use this for any relative date calculations (e.g., "this quarter", "overdue").
10. "This quarter" means %s to %s.`

const synthesisPromptTemplate = `You are a sharp business analyst giving a founder a concise briefing. You work at Skylark Drones, a drone services company.

INSTRUCTIONS:
1. Answer the question directly, like you're briefing a CEO.
2. Lead with the key insight or number.
3. Include supporting data points and percentages where relevant.
4. If there are data quality issues, mention them briefly at the end as a caveat.
5. Use bullet points for clarity when listing multiple data points.
6. Keep it conversational but data-driven. No filler, no hedging.
7. Format numbers nicely (e.g., "₹12.5L" instead of "1250000").
8. If comparing segments, use clear comparisons.
9. Do NOT dump raw data. Synthesize insights.
10. Keep responses concise, ideally 3-8 sentences with key numbers.

DATA QUALITY NOTES:
%s

TODAY'S DATE: %s`

func planningPrompt(boardIDs map[domain.BoardTag]string, schemas map[domain.BoardTag]domain.BoardSchema, availableValues string, today time.Time) string {
	qStart, qEnd := quarterBounds(today)
	return fmt.Sprintf(planningPromptTemplate,
		boardIDs[domain.BoardDeals],
		formatSchema(schemas[domain.BoardDeals]),
		boardIDs[domain.BoardWorkOrders],
		formatSchema(schemas[domain.BoardWorkOrders]),
		availableValues,
		today.Format("2006-01-02"),
		qStart.Format("January 2, 2006"),
		qEnd.Format("January 2, 2006"),
	)
}

func synthesisPrompt(qualityNotes string, today time.Time) string {
	return fmt.Sprintf(synthesisPromptTemplate, qualityNotes, today.Format("2006-01-02"))
}

func formatSchema(schema domain.BoardSchema) string {
	lines := []string{fmt.Sprintf("Board: %s", schema.BoardName), "Columns:"}
	for _, col := range schema.Columns {
		lines = append(lines, fmt.Sprintf("  - %s (type: %s, id: %s)", col.Title, col.Type, col.ID))
	}
	return strings.Join(lines, "\n")
}

// quarterBounds returns the first and last day of the calendar quarter
// containing t.
func quarterBounds(t time.Time) (time.Time, time.Time) {
	quarter := (int(t.Month()) - 1) / 3
	start := time.Date(t.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 3, -1)
	return start, end
}

// buildAvailableValues enumerates the distinct values of each board's prompt
// columns so the planner maps user phrasing onto real data.
func buildAvailableValues(rawItems map[domain.BoardTag][]domain.RawItem) string {
	var b strings.Builder
	b.WriteString("Deals Board Available Values:\n")
	writeUniqueValues(&b, rawItems[domain.BoardDeals], domain.BoardDeals)
	b.WriteString("\nWork Orders Board Available Values:\n")
	writeUniqueValues(&b, rawItems[domain.BoardWorkOrders], domain.BoardWorkOrders)
	return b.String()
}

func writeUniqueValues(b *strings.Builder, items []domain.RawItem, tag domain.BoardTag) {
	profile, ok := domain.ProfileFor(tag)
	if !ok {
		return
	}
	for _, col := range profile.PromptValueColumns {
		seen := map[string]bool{}
		for _, item := range items {
			if v := strings.TrimSpace(item.Columns[col]); v != "" {
				seen[v] = true
			}
		}
		if len(seen) == 0 {
			continue
		}
		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)
		fmt.Fprintf(b, "  %s: %s\n", col, strings.Join(values, ", "))
	}
}
