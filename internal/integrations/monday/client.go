// Package monday is the Monday.com GraphQL API client. Every call makes a
// fresh request; nothing is cached between requests.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
	"github.com/dsharma08k/monday-bi-agent/internal/httpx"
)

const (
	apiVersion = "2024-10"
	pageSize   = 500
)

type Client struct {
	apiURL string
	token  string
}

func NewClient(apiURL, token string) *Client {
	return &Client{apiURL: strings.TrimRight(apiURL, "/"), token: token}
}

// execute runs one GraphQL query and returns the `data` subtree.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any) (gjson.Result, error) {
	payload := map[string]any{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("marshaling query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Version", apiVersion)

	resp, err := httpx.ExternalHTTPClient().Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("Monday.com API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("Monday.com API returned %d: %s", resp.StatusCode, string(respBody))
	}

	parsed := gjson.ParseBytes(respBody)
	if errs := parsed.Get("errors"); errs.Exists() {
		var msgs []string
		errs.ForEach(func(_, e gjson.Result) bool {
			msgs = append(msgs, e.Get("message").String())
			return true
		})
		return gjson.Result{}, fmt.Errorf("Monday.com API errors: %s", strings.Join(msgs, "; "))
	}

	return parsed.Get("data"), nil
}

const schemaQuery = `
query ($boardId: [ID!]!) {
	boards(ids: $boardId) {
		name
		columns {
			id
			title
			type
		}
	}
}`

// BoardSchema fetches the column names and types for a board.
func (c *Client) BoardSchema(ctx context.Context, boardID string) (domain.BoardSchema, error) {
	data, err := c.execute(ctx, schemaQuery, map[string]any{"boardId": []string{boardID}})
	if err != nil {
		return domain.BoardSchema{}, err
	}

	board := data.Get("boards.0")
	if !board.Exists() {
		return domain.BoardSchema{}, fmt.Errorf("board with ID %s not found", boardID)
	}

	schema := domain.BoardSchema{BoardName: board.Get("name").String()}
	board.Get("columns").ForEach(func(_, col gjson.Result) bool {
		schema.Columns = append(schema.Columns, domain.Column{
			ID:    col.Get("id").String(),
			Title: col.Get("title").String(),
			Type:  col.Get("type").String(),
		})
		return true
	})
	return schema, nil
}

const firstPageQuery = `
query ($boardId: [ID!]!) {
	boards(ids: $boardId) {
		items_page(limit: 500) {
			cursor
			items {
				id
				name
				group {
					id
					title
				}
				column_values {
					id
					column {
						title
					}
					text
				}
			}
		}
	}
}`

const nextPageQuery = `
query ($cursor: String!) {
	next_items_page(cursor: $cursor, limit: 500) {
		cursor
		items {
			id
			name
			group {
				id
				title
			}
			column_values {
				id
				column {
					title
				}
				text
			}
		}
	}
}`

// AllItems fetches every item on a board, following pagination cursors past
// the 500-item page limit.
func (c *Client) AllItems(ctx context.Context, boardID string) ([]domain.RawItem, error) {
	data, err := c.execute(ctx, firstPageQuery, map[string]any{"boardId": []string{boardID}})
	if err != nil {
		return nil, err
	}

	board := data.Get("boards.0")
	if !board.Exists() {
		return nil, fmt.Errorf("board with ID %s not found", boardID)
	}

	var items []domain.RawItem
	page := board.Get("items_page")
	page.Get("items").ForEach(func(_, item gjson.Result) bool {
		items = append(items, transformItem(item))
		return true
	})
	cursor := page.Get("cursor").String()

	for cursor != "" {
		data, err := c.execute(ctx, nextPageQuery, map[string]any{"cursor": cursor})
		if err != nil {
			return nil, err
		}
		next := data.Get("next_items_page")
		next.Get("items").ForEach(func(_, item gjson.Result) bool {
			items = append(items, transformItem(item))
			return true
		})
		cursor = next.Get("cursor").String()
	}

	return items, nil
}

const groupsQuery = `
query ($boardId: [ID!]!) {
	boards(ids: $boardId) {
		groups {
			id
			title
		}
	}
}`

// BoardGroups fetches the groups (lanes) within a board.
func (c *Client) BoardGroups(ctx context.Context, boardID string) ([]domain.Group, error) {
	data, err := c.execute(ctx, groupsQuery, map[string]any{"boardId": []string{boardID}})
	if err != nil {
		return nil, err
	}

	board := data.Get("boards.0")
	if !board.Exists() {
		return nil, fmt.Errorf("board with ID %s not found", boardID)
	}

	var groups []domain.Group
	board.Get("groups").ForEach(func(_, g gjson.Result) bool {
		groups = append(groups, domain.Group{ID: g.Get("id").String(), Title: g.Get("title").String()})
		return true
	})
	return groups, nil
}

// transformItem maps column titles to their displayed text. A blank text is
// kept as "" and treated as missing downstream.
func transformItem(item gjson.Result) domain.RawItem {
	columns := map[string]string{}
	item.Get("column_values").ForEach(func(_, col gjson.Result) bool {
		title := col.Get("column.title").String()
		if title == "" {
			title = col.Get("id").String()
		}
		columns[title] = col.Get("text").String()
		return true
	})

	return domain.RawItem{
		ID:   item.Get("id").String(),
		Name: item.Get("name").String(),
		Group: domain.Group{
			ID:    item.Get("group.id").String(),
			Title: item.Get("group.title").String(),
		},
		Columns: columns,
	}
}
