package scenegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/fresneltrace/fresnel/log"
	"github.com/fresneltrace/fresnel/pkg/scene"
)

var logger = log.New("scenegen")

// A reply that fails to parse gets one corrective round; the next failure
// is final.
const maxAttempts = 2

// Generator turns a text prompt into a validated scene config.
type Generator struct {
	provider Provider
	model    string
}

// NewGenerator creates a generator bound to one provider and model.
func NewGenerator(provider Provider, model string) *Generator {
	return &Generator{provider: provider, model: model}
}

// Generate asks the model for a scene document and parses it all the way
// to a buildable scene. Parse and build failures are quoted back to the
// model once before giving up.
func (g *Generator) Generate(ctx context.Context, prompt string) (*scene.Config, error) {
	system := SystemPrompt()
	messages := []Message{{Role: RoleUser, Text: prompt}}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		logger.Infof("asking %s (%s), attempt %d/%d", g.provider.Name(), g.model, attempt, maxAttempts)

		reply, err := g.provider.Generate(ctx, &Request{
			Model:        g.model,
			SystemPrompt: system,
			Messages:     messages,
		})
		if err != nil {
			return nil, err
		}

		cfg, err := parseReply(reply)
		if err == nil {
			logger.Infof("got a valid scene with %d objects", len(cfg.SceneList))
			return cfg, nil
		}

		logger.Warningf("reply failed to parse: %v", err)
		lastErr = err
		messages = append(messages,
			Message{Role: RoleAssistant, Text: reply},
			Message{Role: RoleUser, Text: fmt.Sprintf(
				"That document failed to parse: %v. Reply with a corrected JSON document only.", err)},
		)
	}

	return nil, fmt.Errorf("scene generation failed after %d attempts: %w", maxAttempts, lastErr)
}

// parseReply extracts the JSON payload and checks it builds into a scene,
// so variant and material mistakes are caught here rather than at render
// time.
func parseReply(reply string) (*scene.Config, error) {
	cfg, err := scene.ParseConfig([]byte(ExtractJSON(reply)))
	if err != nil {
		return nil, err
	}
	if _, err := cfg.Scene(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExtractJSON pulls the JSON document out of a model reply: the first
// fenced code block if there is one, otherwise the outermost brace pair.
func ExtractJSON(reply string) string {
	if start := strings.Index(reply, "```"); start >= 0 {
		rest := reply[start+3:]
		// Drop the info string ("json") up to the end of the fence line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
	}
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start >= 0 && end > start {
		return reply[start : end+1]
	}
	return strings.TrimSpace(reply)
}
