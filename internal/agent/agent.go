// Package agent sequences one user turn end to end: fetch schemas and
// samples, request a plan from the reasoning service, clean/filter/compute
// over the requested boards, then request the prose answer. Every stage
// appends a trace line; the trace and the quality report survive failure.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dsharma08k/monday-bi-agent/internal/clean"
	"github.com/dsharma08k/monday-bi-agent/internal/domain"
	"github.com/dsharma08k/monday-bi-agent/internal/query"
)

const (
	// historyWindow bounds how much caller-supplied conversation context is
	// forwarded to the reasoning service.
	historyWindow = 10
	// maxSampleItems bounds the per-board sample embedded in the synthesis
	// payload.
	maxSampleItems = 15

	planMaxTokens   = 1024
	answerMaxTokens = 2048
)

// User-facing answers for the fatal error classes. Error detail goes to the
// trace and the log, never the answer.
const (
	rephraseAnswer = "I had trouble understanding your question. Could you rephrase it? I need to create a clear plan to query the right data."
	capacityAnswer = "Our AI service is temporarily at capacity. This usually resets within a few minutes. Please try again shortly."
	genericAnswer  = "Something went wrong while processing your query. Please try again."
)

// BoardService supplies complete, already-paginated board data.
type BoardService interface {
	BoardSchema(ctx context.Context, boardID string) (domain.BoardSchema, error)
	AllItems(ctx context.Context, boardID string) ([]domain.RawItem, error)
}

// LLMClient is the reasoning-service contract shared by the planning and
// synthesis calls.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt string, messages []domain.ConversationTurn, maxTokens int64) (string, error)
}

type Agent struct {
	boards   BoardService
	llm      LLMClient
	columns  clean.ColumnMap
	boardIDs map[domain.BoardTag]string
	now      func() time.Time
}

func New(boards BoardService, llm LLMClient, columns clean.ColumnMap, boardIDs map[domain.BoardTag]string) *Agent {
	return &Agent{
		boards:   boards,
		llm:      llm,
		columns:  columns,
		boardIDs: boardIDs,
		now:      time.Now,
	}
}

// ProcessQuery answers one business question. It never returns an error:
// every failure class maps to a user-facing answer, and the action trace and
// quality report accumulated so far are always part of the result.
func (a *Agent) ProcessQuery(ctx context.Context, message string, history []domain.ConversationTurn) domain.QueryResult {
	trace := []string{}
	quality := &domain.QualityReport{}
	history = trimHistory(history)

	fail := func(answer string) domain.QueryResult {
		quality.Finalize()
		return domain.QueryResult{Answer: answer, ActionTrace: trace, Quality: quality}
	}
	serviceFail := func(stage string, err error) domain.QueryResult {
		log.Printf("agent %s error: %v", stage, err)
		if isRateLimited(err) {
			trace = append(trace, "Rate limit reached, waiting for API quota to reset")
			return fail(capacityAnswer)
		}
		trace = append(trace, fmt.Sprintf("Error: %v", err))
		return fail(genericAnswer)
	}

	// FetchSchemas
	trace = append(trace, "Fetching board schemas from Monday.com...")
	schemas := map[domain.BoardTag]domain.BoardSchema{}
	for _, tag := range domain.AllBoards() {
		schema, err := a.boards.BoardSchema(ctx, a.boardIDs[tag])
		if err != nil {
			return serviceFail("schema fetch", err)
		}
		schemas[tag] = schema
	}
	trace = append(trace, fmt.Sprintf("Retrieved schemas: Deals (%d columns), Work Orders (%d columns)",
		len(schemas[domain.BoardDeals].Columns), len(schemas[domain.BoardWorkOrders].Columns)))

	// FetchSamples: a full row set per board, both for enumerating real
	// filter values in the planning prompt and for the cleaning stage.
	trace = append(trace, "Fetching available filter values...")
	rawItems := map[domain.BoardTag][]domain.RawItem{}
	for _, tag := range domain.AllBoards() {
		items, err := a.boards.AllItems(ctx, a.boardIDs[tag])
		if err != nil {
			return serviceFail("item fetch", err)
		}
		rawItems[tag] = items
	}

	// RequestPlan
	trace = append(trace, "Analyzing query with AI to create execution plan...")
	today := a.now()
	system := planningPrompt(a.boardIDs, schemas, buildAvailableValues(rawItems), today)
	messages := append(append([]domain.ConversationTurn{}, history...), domain.ConversationTurn{Role: "user", Content: message})

	planText, err := a.llm.Complete(ctx, system, messages, planMaxTokens)
	if err != nil {
		return serviceFail("plan request", err)
	}

	plan, err := parseQueryPlan(planText)
	if err != nil {
		log.Printf("agent plan parse error: %v", err)
		trace = append(trace, fmt.Sprintf("Error parsing AI query plan: %v", err))
		return fail(rephraseAnswer)
	}

	if plan.NeedsClarification {
		trace = append(trace, fmt.Sprintf("Need more info: %s", plan.ClarificationQuestion))
		return fail(plan.ClarificationQuestion)
	}

	trace = append(trace, fmt.Sprintf("Query plan: query %s board(s), analysis type: %s",
		joinBoards(plan.BoardsToQuery), analysisType(plan)))

	// CleanAndFilter + ComputeMetrics, per requested board.
	now := a.now()
	allFiltered := map[domain.BoardTag][]domain.CleanedItem{}
	allMetrics := map[domain.BoardTag]domain.MetricsResult{}
	for _, tag := range plan.BoardsToQuery {
		profile, _ := domain.ProfileFor(tag)
		trace = append(trace, fmt.Sprintf("Processing %s data...", tag))
		trace = append(trace, fmt.Sprintf("Using %d items from the %s board", len(rawItems[tag]), tag))

		trace = append(trace, fmt.Sprintf("Cleaning and normalizing %s data...", tag))
		cleanedItems, report := clean.CleanBoard(rawItems[tag], a.columns)
		quality.Merge(report)

		filtered := query.ApplyFilters(cleanedItems, plan.Filters, profile)
		trace = append(trace, fmt.Sprintf("After filtering: %d %s match criteria", len(filtered), tag))

		allFiltered[tag] = filtered
		allMetrics[tag] = query.ComputeMetrics(filtered, plan.Metrics, profile, now)
	}

	// The merged summary is computed once, after all boards are processed,
	// because the synthesis prompt embeds it.
	quality.Finalize()

	// RequestSynthesis
	trace = append(trace, "Generating business insight response...")
	payload, err := buildSynthesisPayload(message, plan, allFiltered, allMetrics)
	if err != nil {
		return serviceFail("payload build", err)
	}

	responseMessages := append(append([]domain.ConversationTurn{}, history...), domain.ConversationTurn{Role: "user", Content: payload})
	answer, err := a.llm.Complete(ctx, synthesisPrompt(quality.Summary, today), responseMessages, answerMaxTokens)
	if err != nil {
		return serviceFail("synthesis request", err)
	}
	trace = append(trace, "Response generated successfully")

	return domain.QueryResult{Answer: answer, ActionTrace: trace, Quality: quality}
}

// trimHistory keeps only the trailing window of conversation context.
func trimHistory(history []domain.ConversationTurn) []domain.ConversationTurn {
	if len(history) <= historyWindow {
		return history
	}
	return history[len(history)-historyWindow:]
}

func joinBoards(boards []domain.BoardTag) string {
	names := make([]string, 0, len(boards))
	for _, b := range boards {
		names = append(names, string(b))
	}
	return strings.Join(names, ", ")
}

func analysisType(plan *domain.QueryPlan) string {
	if plan.AnalysisType == "" {
		return "unknown"
	}
	return plan.AnalysisType
}

type boardSummary struct {
	Metrics           domain.MetricsResult `json:"metrics"`
	TotalItemsQueried int                  `json:"total_items_queried"`
	SampleItems       []map[string]any     `json:"sample_items"`
}

// buildSynthesisPayload embeds the plan and a bounded data summary into the
// user message of the synthesis call.
func buildSynthesisPayload(message string, plan *domain.QueryPlan, filtered map[domain.BoardTag][]domain.CleanedItem, metrics map[domain.BoardTag]domain.MetricsResult) (string, error) {
	summary := map[string]boardSummary{}
	for tag, items := range filtered {
		samples := make([]map[string]any, 0, maxSampleItems)
		for i, item := range items {
			if i >= maxSampleItems {
				break
			}
			sample := map[string]any{"name": item.Name}
			for col, val := range item.Columns {
				if val != nil {
					sample[col] = val
				}
			}
			samples = append(samples, sample)
		}
		summary[string(tag)] = boardSummary{
			Metrics:           metrics[tag],
			TotalItemsQueried: len(items),
			SampleItems:       samples,
		}
	}

	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling plan: %w", err)
	}
	dataJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling data summary: %w", err)
	}

	return fmt.Sprintf(`User Question: %s

Query Plan: %s

Data Retrieved: %s

Please provide a concise, insight-driven answer based on this data.`, message, planJSON, dataJSON), nil
}
