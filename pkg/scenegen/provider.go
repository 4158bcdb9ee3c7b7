package scenegen

import "context"

// Role marks who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one text turn in a generation conversation.
type Message struct {
	Role Role
	Text string
}

// Request carries everything a provider needs for one completion.
type Request struct {
	Model        string
	SystemPrompt string
	Messages     []Message
}

// ModelInfo describes one model a provider can serve.
type ModelInfo struct {
	ID          string
	DisplayName string
	Provider    string
}

// Provider is a text-only LLM backend.
type Provider interface {
	// Name returns the provider's registry name.
	Name() string

	// Generate returns the model's text reply to the request.
	Generate(ctx context.Context, req *Request) (string, error)

	// ListModels returns the models this provider serves, preferred first.
	ListModels() []ModelInfo
}
