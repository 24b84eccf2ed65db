package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Provider abstracts the chat API client.
//
// This interface is defined in the model package (not provider package) to
// avoid import cycles: the provider implementation imports model, and the
// agent and ui packages can use the Provider interface without importing the
// provider package.
type Provider interface {
	// Chat sends messages and streams text chunks back via callback.
	// Returning an error from the callback aborts the stream; the error is
	// propagated unchanged so callers can detect their own cancellation.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ChatWithTools sends messages with the given tool catalog and returns
	// the finalized turn (content blocks plus stop reason). Text deltas are
	// streamed via callback as they arrive; tool_use blocks are only
	// complete once the turn is returned.
	ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) (*Turn, error)

	// GetModel returns the currently selected model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)
}

// StreamCallback is called for each chunk of streamed response text.
type StreamCallback func(chunk string) error
