package app

import (
	"log"
	"net/http"

	"github.com/dsharma08k/monday-bi-agent/internal/agent"
	"github.com/dsharma08k/monday-bi-agent/internal/audit"
	"github.com/dsharma08k/monday-bi-agent/internal/clean"
	"github.com/dsharma08k/monday-bi-agent/internal/config"
	"github.com/dsharma08k/monday-bi-agent/internal/domain"
	"github.com/dsharma08k/monday-bi-agent/internal/httpx"
	"github.com/dsharma08k/monday-bi-agent/internal/integrations/llm"
	"github.com/dsharma08k/monday-bi-agent/internal/integrations/monday"
	"github.com/dsharma08k/monday-bi-agent/internal/storage/sqlite"
	transport "github.com/dsharma08k/monday-bi-agent/internal/transport/http"
)

func Main() {
	cfg := config.LoadConfig()
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf(
		"Config loaded. LLMProvider=%s ListenAddr=%s ExternalHTTPTimeout=%s",
		cfg.LLMProvider,
		cfg.ListenAddr,
		appliedHTTPTimeout,
	)

	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	log.Printf("Database initialized at %s", cfg.DBPath)
	defer db.Close()

	columns := clean.DefaultColumnMap()
	if cfg.ColumnMapPath != "" {
		columns, err = clean.LoadColumnMap(cfg.ColumnMapPath)
		if err != nil {
			log.Fatalf("Failed to load column map: %v", err)
		}
		log.Printf("Column map loaded from %s (%d columns)", cfg.ColumnMapPath, len(columns))
	}

	boards := monday.NewClient(cfg.MondayAPIURL, cfg.MondayAPIToken)

	var reasoner llm.Client
	switch cfg.LLMProvider {
	case "openai":
		reasoner = llm.NewOpenAICompatible(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.OpenAIBaseURL)
	default:
		reasoner = llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.LLMModel)
	}

	boardIDs := map[domain.BoardTag]string{
		domain.BoardDeals:      cfg.MondayDealsBoardID,
		domain.BoardWorkOrders: cfg.MondayWorkOrdersBoardID,
	}

	ag := agent.New(boards, reasoner, columns, boardIDs)
	audit.StartScheduler(cfg.AuditSchedule, db, boards, columns, boardIDs)

	handler := transport.NewHandler(ag, boards, db, boardIDs)

	log.Printf("Starting Monday BI Agent on %s...", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler.Router()); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
