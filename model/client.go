// Package model abstracts chat-completion providers behind a single
// Generate call over the transcript types in core. Providers are
// selected by a "provider/model-name" spec, e.g.
// "anthropic/claude-sonnet-4-20250514" or "openai/gpt-4o".
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/tools"
)

// DefaultMaxTokens caps the response when a request does not set one.
const DefaultMaxTokens = 1024

// Request is one model invocation: the system prompt, the transcript
// so far, and the tools the model may call.
type Request struct {
	System    string
	Messages  []core.Message
	Tools     []tools.Definition
	MaxTokens int
}

// Client generates one assistant message for a request. The returned
// message carries text content, tool calls, or both.
type Client interface {
	Generate(ctx context.Context, req *Request) (*core.Message, error)
}

// New creates a client from a "provider/model-name" spec. Supported
// providers are "anthropic" and "openai".
func New(spec, apiKey string) (Client, error) {
	provider, name, ok := strings.Cut(spec, "/")
	if !ok || provider == "" || name == "" {
		return nil, fmt.Errorf("invalid model spec %q: want provider/model-name", spec)
	}
	switch provider {
	case "anthropic":
		return NewAnthropic(name, apiKey), nil
	case "openai":
		return NewOpenAI(name, apiKey), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
}
