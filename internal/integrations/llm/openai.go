package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
	"github.com/dsharma08k/monday-bi-agent/internal/httpx"
)

const (
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int64           `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAICompatible calls any chat-completions endpoint speaking the OpenAI
// wire format; pointing base_url at Groq works unchanged.
type OpenAICompatible struct {
	apiKey  string
	model   string
	baseURL string
}

func NewOpenAICompatible(apiKey, model, baseURL string) *OpenAICompatible {
	if model == "" {
		model = defaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAICompatible{apiKey: apiKey, model: model, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *OpenAICompatible) Complete(ctx context.Context, systemPrompt string, messages []domain.ConversationTurn, maxTokens int64) (string, error) {
	chat := make([]openAIMessage, 0, len(messages)+1)
	chat = append(chat, openAIMessage{Role: "system", Content: systemPrompt})
	for _, turn := range messages {
		role := turn.Role
		if role != "assistant" {
			role = "user"
		}
		chat = append(chat, openAIMessage{Role: role, Content: turn.Content})
	}

	bodyBytes, err := json.Marshal(openAIRequest{
		Model:       c.model,
		Messages:    chat,
		MaxTokens:   maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := httpx.ExternalHTTPClient().Do(req)
	if err != nil {
		log.Printf("llm openai error: %v", err)
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing OpenAI response: %w", err)
	}
	if parsed.Error != nil {
		log.Printf("llm openai api error: %s", parsed.Error.Message)
		return "", fmt.Errorf("OpenAI API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	log.Printf("llm openai response size=%d", len(parsed.Choices[0].Message.Content))
	return parsed.Choices[0].Message.Content, nil
}
