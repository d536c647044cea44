package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

// parseQueryPlan parses the planning response into a validated QueryPlan.
// The model is told to return bare JSON but sometimes wraps it in code
// fences or leading prose; strip the fence first, then fall back to the
// substring between the first '{' and the last '}'.
func parseQueryPlan(responseText string) (*domain.QueryPlan, error) {
	text := stripCodeFence(responseText)

	var plan domain.QueryPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON object in plan response: %w", err)
		}
		plan = domain.QueryPlan{}
		if err := json.Unmarshal([]byte(text[start:end+1]), &plan); err != nil {
			return nil, fmt.Errorf("parsing query plan: %w", err)
		}
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isRateLimited recognizes rate-limit signals in provider error text so the
// caller gets a friendlier answer than a generic failure.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit")
}
