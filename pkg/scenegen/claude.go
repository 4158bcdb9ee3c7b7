package scenegen

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeProvider serves Anthropic models.
type ClaudeProvider struct {
	client anthropic.Client
}

// NewClaudeProvider creates a provider from the ANTHROPIC_API_KEY
// environment variable.
func NewClaudeProvider() (*ClaudeProvider, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	return &ClaudeProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Name returns the provider's registry name.
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// Generate returns the first text block of the model's reply.
func (p *ClaudeProvider) Generate(ctx context.Context, req *Request) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, anthropic.MessageParam{
			Role:    anthropic.MessageParamRole(msg.Role),
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(msg.Text)},
		})
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		Messages:  messages,
		MaxTokens: int64(8192),
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("claude returned no text content")
}

// ListModels returns the served Claude models, preferred first.
func (p *ClaudeProvider) ListModels() []ModelInfo {
	return []ModelInfo{
		{ID: "claude-sonnet-4-5-20250929", DisplayName: "Claude Sonnet 4.5", Provider: "claude"},
		{ID: "claude-haiku-4-5-20251001", DisplayName: "Claude Haiku 4.5", Provider: "claude"},
		{ID: "claude-opus-4-5-20251101", DisplayName: "Claude Opus 4.5", Provider: "claude"},
	}
}
