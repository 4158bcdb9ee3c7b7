package scenegen

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiProvider serves Google models.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a provider from the GEMINI_API_KEY
// environment variable.
func NewGeminiProvider(ctx context.Context) (*GeminiProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Name returns the provider's registry name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Generate returns the first text part of the model's reply. Gemini has
// no separate system parameter, so the system prompt leads the
// conversation as a user turn.
func (p *GeminiProvider) Generate(ctx context.Context, req *Request) (string, error) {
	contents := make([]*genai.Content, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		})
	}
	for _, msg := range req.Messages {
		role := string(msg.Role)
		if msg.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}

	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" && !part.Thought {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("gemini returned no text content")
}

// ListModels returns the served Gemini models, preferred first.
func (p *GeminiProvider) ListModels() []ModelInfo {
	return []ModelInfo{
		{ID: "gemini-2.5-flash", DisplayName: "Gemini 2.5 Flash", Provider: "gemini"},
		{ID: "gemini-2.5-pro", DisplayName: "Gemini 2.5 Pro", Provider: "gemini"},
	}
}
