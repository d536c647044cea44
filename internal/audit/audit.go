// Package audit runs scheduled cleaning passes over the boards and records
// the resulting quality counters, so data hygiene trends are visible without
// anyone asking a question.
package audit

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dsharma08k/monday-bi-agent/internal/clean"
	"github.com/dsharma08k/monday-bi-agent/internal/domain"
	"github.com/dsharma08k/monday-bi-agent/internal/storage/sqlite"
)

// BoardService is the slice of the board client the audit needs.
type BoardService interface {
	AllItems(ctx context.Context, boardID string) ([]domain.RawItem, error)
}

// RunAudit cleans every configured board once and stores the per-board
// quality counters. Errors on one board do not stop the others.
func RunAudit(ctx context.Context, db *sql.DB, boards BoardService, columns clean.ColumnMap, boardIDs map[domain.BoardTag]string) {
	for _, tag := range domain.AllBoards() {
		boardID, ok := boardIDs[tag]
		if !ok {
			continue
		}
		items, err := boards.AllItems(ctx, boardID)
		if err != nil {
			log.Printf("audit fetch error board=%s err=%v", tag, err)
			continue
		}

		_, report := clean.CleanBoard(items, columns)
		report.Finalize()
		log.Printf("audit board=%s items=%d missing=%d bad_dates=%d bad_numbers=%d",
			tag, report.TotalItems, report.MissingValues, report.UnparseableDates, report.UnparseableNumbers)

		if err := sqlite.InsertQualityAudit(db, string(tag), report); err != nil {
			log.Printf("audit store error board=%s err=%v", tag, err)
		}
	}
}

// StartScheduler starts the cron-based audit loop. The schedule is a
// standard 5-field cron expression (minute hour day-of-month month
// day-of-week); an empty schedule disables the audit.
func StartScheduler(schedule string, db *sql.DB, boards BoardService, columns clean.ColumnMap, boardIDs map[domain.BoardTag]string) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Println("Quality audit disabled (audit_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid audit_schedule '%s': %v, quality audit disabled", schedule, err)
		return
	}

	log.Printf("Quality audit scheduled (cron: %s)", schedule)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			log.Printf("Next quality audit at %s (in %s)", next.Format("Mon Jan 2 15:04"), next.Sub(now).Round(time.Minute))

			time.Sleep(next.Sub(now))
			RunAudit(context.Background(), db, boards, columns, boardIDs)
		}
	}()
}
