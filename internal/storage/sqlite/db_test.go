package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bi-agent-test.db")
	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAppendAndRecentTurns(t *testing.T) {
	db := newTestDB(t)

	turns := []domain.ConversationTurn{
		{Role: "user", Content: "how is our pipeline?"},
		{Role: "assistant", Content: "Pipeline is at ₹1.7Cr."},
		{Role: "user", Content: "and mining only?"},
		{Role: "assistant", Content: "Mining is ₹1.2Cr."},
	}
	if err := AppendTurns(db, "session-1", turns); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}

	got, err := RecentTurns(db, "session-1", 10)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(got))
	}
	if got[0].Content != "how is our pipeline?" || got[3].Content != "Mining is ₹1.2Cr." {
		t.Fatalf("turns not in chronological order: %+v", got)
	}
}

func TestRecentTurnsLimitKeepsTail(t *testing.T) {
	db := newTestDB(t)

	var turns []domain.ConversationTurn
	for i := 0; i < 6; i++ {
		turns = append(turns,
			domain.ConversationTurn{Role: "user", Content: "q"},
			domain.ConversationTurn{Role: "assistant", Content: "a"},
		)
	}
	if err := AppendTurns(db, "session-2", turns); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}

	got, err := RecentTurns(db, "session-2", 10)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected limit of 10 turns, got %d", len(got))
	}
	// The tail ends on the most recent assistant turn.
	if got[len(got)-1].Role != "assistant" {
		t.Fatalf("expected tail to end with assistant turn, got %s", got[len(got)-1].Role)
	}
}

func TestRecentTurnsIsolatedPerSession(t *testing.T) {
	db := newTestDB(t)

	if err := AppendTurns(db, "a", []domain.ConversationTurn{{Role: "user", Content: "for a"}}); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}
	if err := AppendTurns(db, "b", []domain.ConversationTurn{{Role: "user", Content: "for b"}}); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}

	got, err := RecentTurns(db, "a", 10)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(got) != 1 || got[0].Content != "for a" {
		t.Fatalf("session isolation broken: %+v", got)
	}
}

func TestRecentTurnsEmptySession(t *testing.T) {
	db := newTestDB(t)
	got, err := RecentTurns(db, "missing", 10)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no turns for unknown session, got %d", len(got))
	}
}

func TestInsertQualityAudit(t *testing.T) {
	db := newTestDB(t)

	report := &domain.QualityReport{
		TotalItems:         42,
		MissingValues:      5,
		UnparseableDates:   2,
		UnparseableNumbers: 1,
		NormalizedStatuses: 7,
		NormalizedText:     3,
	}
	report.Finalize()

	if err := InsertQualityAudit(db, "deals", report); err != nil {
		t.Fatalf("InsertQualityAudit failed: %v", err)
	}

	var board, summary string
	var total, missing int
	err := db.QueryRow(`SELECT board, total_items, missing_values, summary FROM quality_audits`).
		Scan(&board, &total, &missing, &summary)
	if err != nil {
		t.Fatalf("query quality_audits failed: %v", err)
	}
	if board != "deals" || total != 42 || missing != 5 {
		t.Fatalf("unexpected audit row: board=%s total=%d missing=%d", board, total, missing)
	}
	if summary == "" {
		t.Fatalf("expected finalized summary to be stored")
	}
}
