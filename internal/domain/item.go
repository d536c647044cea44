package domain

// Group is the board group (lane) an item sits in.
type Group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RawItem is one board row exactly as fetched: column titles mapped to the
// displayed text. An empty string means the cell is blank.
type RawItem struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Group   Group             `json:"group"`
	Columns map[string]string `json:"columns"`
}

// CleanedItem mirrors a RawItem after normalization. Column values are one
// of: string (ISO date, canonical status, or title-cased text), float64, the
// untouched raw text for unclassified columns, or nil when the cell was
// blank or unparseable. The key set always matches the source RawItem.
type CleanedItem struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Group   Group          `json:"group"`
	Columns map[string]any `json:"columns"`
}

// Column describes one board column.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// BoardSchema is the structure of one board.
type BoardSchema struct {
	BoardName string   `json:"board_name"`
	Columns   []Column `json:"columns"`
}

// ConversationTurn is one prior message in the chat, supplied by the caller.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// MetricsResult maps a requested metric tag (or its companion formatted/
// derived key) to the computed value. Tags that were not requested are
// absent, never zero-filled.
type MetricsResult map[string]any

// QueryResult is what one user turn produces, success or failure.
type QueryResult struct {
	Answer      string         `json:"answer"`
	ActionTrace []string       `json:"action_trace"`
	Quality     *QualityReport `json:"data_quality_report"`
}
