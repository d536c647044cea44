// Package sqlite persists conversation turns (per session) and the counters
// of scheduled quality audits. Board data itself is never stored.
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS conversation_turns (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON conversation_turns(session_id, id);

	CREATE TABLE IF NOT EXISTS quality_audits (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		board               TEXT NOT NULL,
		total_items         INTEGER NOT NULL,
		missing_values      INTEGER NOT NULL,
		unparseable_dates   INTEGER NOT NULL,
		unparseable_numbers INTEGER NOT NULL,
		normalized_statuses INTEGER NOT NULL,
		normalized_text     INTEGER NOT NULL,
		summary             TEXT DEFAULT '',
		audited_at          DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audits_board ON quality_audits(board, audited_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return db, nil
}

// AppendTurns stores conversation turns for a session in order.
func AppendTurns(db *sql.DB, sessionID string, turns []domain.ConversationTurn) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO conversation_turns (session_id, role, content) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, turn := range turns {
		if _, err := stmt.Exec(sessionID, turn.Role, turn.Content); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentTurns returns the last limit turns of a session in chronological
// order.
func RecentTurns(db *sql.DB, sessionID string, limit int) ([]domain.ConversationTurn, error) {
	rows, err := db.Query(
		`SELECT role, content FROM conversation_turns WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reversed []domain.ConversationTurn
	for rows.Next() {
		var turn domain.ConversationTurn
		if err := rows.Scan(&turn.Role, &turn.Content); err != nil {
			return nil, err
		}
		reversed = append(reversed, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	turns := make([]domain.ConversationTurn, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		turns = append(turns, reversed[i])
	}
	return turns, nil
}

// InsertQualityAudit records the counters of one scheduled cleaning pass.
func InsertQualityAudit(db *sql.DB, board string, report *domain.QualityReport) error {
	_, err := db.Exec(
		`INSERT INTO quality_audits (board, total_items, missing_values, unparseable_dates, unparseable_numbers, normalized_statuses, normalized_text, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		board, report.TotalItems, report.MissingValues, report.UnparseableDates,
		report.UnparseableNumbers, report.NormalizedStatuses, report.NormalizedText, report.Summary,
	)
	return err
}
