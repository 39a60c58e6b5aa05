package chat

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by a Completer that has no credentials.
var ErrNotConfigured = errors.New("llm completer not configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ModelConfig struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	TopP        float64 `json:"top_p"`
}

// DefaultModelConfig keeps answers analytical rather than creative.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{Temperature: 0.3, MaxTokens: 500, TopP: 0.9}
}

// Completer is a single-turn text completion backend.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message, cfg ModelConfig) (string, error)
}
