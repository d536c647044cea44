// Package llm is the reasoning-service client. Both the planning and the
// synthesis stages go through the same Client contract: a system prompt plus
// a message history in, a single text blob out.
package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dsharma08k/monday-bi-agent/internal/domain"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// Client sends one completion request to the reasoning service.
type Client interface {
	Complete(ctx context.Context, systemPrompt string, messages []domain.ConversationTurn, maxTokens int64) (string, error)
}

// Anthropic calls the Anthropic Messages API.
type Anthropic struct {
	apiKey string
	model  string
}

func NewAnthropic(apiKey, model string) *Anthropic {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &Anthropic{apiKey: apiKey, model: model}
}

func (a *Anthropic) Complete(ctx context.Context, systemPrompt string, messages []domain.ConversationTurn, maxTokens int64) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(a.apiKey))

	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, turn := range messages {
		if turn.Role == "assistant" {
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
		} else {
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
		}
	}

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: params,
	})
	if err != nil {
		log.Printf("llm anthropic error: %v", err)
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm anthropic response size=%d tokens_in=%d tokens_out=%d",
				len(block.Text), message.Usage.InputTokens, message.Usage.OutputTokens)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}
