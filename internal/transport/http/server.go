// Package http exposes the agent to the frontend: one query endpoint plus
// health and schema lookups.
package http

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
	"github.com/dsharma08k/monday-bi-agent/internal/storage/sqlite"
)

// QueryService answers one business question.
type QueryService interface {
	ProcessQuery(ctx context.Context, message string, history []domain.ConversationTurn) domain.QueryResult
}

// SchemaService fetches live board schemas.
type SchemaService interface {
	BoardSchema(ctx context.Context, boardID string) (domain.BoardSchema, error)
}

type Handler struct {
	agent    QueryService
	boards   SchemaService
	db       *sql.DB // nil disables session storage
	boardIDs map[domain.BoardTag]string
}

func NewHandler(agent QueryService, boards SchemaService, db *sql.DB, boardIDs map[domain.BoardTag]string) *Handler {
	return &Handler{agent: agent, boards: boards, db: db, boardIDs: boardIDs}
}

// Router builds the HTTP surface.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/query", h.Query)
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/boards/schema", h.Schema)

	return r
}

type queryRequest struct {
	Message   string                    `json:"message"`
	History   []domain.ConversationTurn `json:"history"`
	SessionID string                    `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Query handles POST /query. History may be supplied inline; when a
// session_id is given instead, the stored tail of that session is used and
// the new user/assistant turns are appended afterwards.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "message cannot be empty"})
		return
	}

	log.Printf("http query session=%s message=%.100q", req.SessionID, req.Message)

	history := req.History
	if len(history) == 0 && req.SessionID != "" && h.db != nil {
		stored, err := sqlite.RecentTurns(h.db, req.SessionID, 10)
		if err != nil {
			log.Printf("http session load error session=%s err=%v", req.SessionID, err)
		} else {
			history = stored
		}
	}

	result := h.agent.ProcessQuery(r.Context(), req.Message, history)

	if req.SessionID != "" && h.db != nil {
		turns := []domain.ConversationTurn{
			{Role: "user", Content: req.Message},
			{Role: "assistant", Content: result.Answer},
		}
		if err := sqlite.AppendTurns(h.db, req.SessionID, turns); err != nil {
			log.Printf("http session store error session=%s err=%v", req.SessionID, err)
		}
	}

	render.JSON(w, r, result)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok", "service": "Monday BI Agent"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok", "service": "monday-bi-agent"})
}

// Schema handles GET /boards/schema?board=deals|workorders.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	board := domain.BoardTag(r.URL.Query().Get("board"))
	boardID, ok := h.boardIDs[board]
	if !ok {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "invalid board name, use 'deals' or 'workorders'"})
		return
	}

	schema, err := h.boards.BoardSchema(r.Context(), boardID)
	if err != nil {
		log.Printf("http schema fetch error board=%s err=%v", board, err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "error fetching board schema"})
		return
	}
	render.JSON(w, r, schema)
}
