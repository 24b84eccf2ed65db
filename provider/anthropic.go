package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
	"atui/mcp"
	"atui/model"
)

// AnthropicProvider implements model.Provider against an
// Anthropic-compatible messages endpoint using the official Go SDK.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       anthropic.Model
	baseURL     string
	temperature float64
	maxTokens   int64
}

// NewAnthropicProvider creates the chat client. A missing API key fails
// here, before any network call.
func NewAnthropicProvider(cfg *config.Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, &APIError{Message: "API key is required"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	modelName := cfg.DefaultModel
	if modelName == "" {
		modelName = config.DefaultModel
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
	)

	return &AnthropicProvider{
		client:      &client,
		model:       anthropic.Model(modelName),
		baseURL:     baseURL,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Chat streams a plain (no tools) response, forwarding text chunks to
// callback. A callback error cancels the stream and is returned unchanged,
// so callers can distinguish their own cancellation from API failures.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	params := p.buildParams(messages, nil)

	stream := p.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		event := stream.Current()

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if callback != nil {
					if err := callback(deltaVariant.Text); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return wrapAPIError(err)
	}

	return nil
}

// ChatWithTools streams a tool-aware response and returns the finalized
// turn. Text deltas reach callback as they arrive; tool input JSON is
// accumulated per block and parsed when each block stops.
func (p *AnthropicProvider) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) (*model.Turn, error) {
	params := p.buildParams(messages, tools)

	stream := p.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	acc := newAccumulator()

	for stream.Next() {
		if err := acc.handle(stream.Current(), callback); err != nil {
			return nil, err
		}
	}

	if err := stream.Err(); err != nil {
		return nil, wrapAPIError(err)
	}

	turn := acc.turn()
	if config.DebugLog != nil {
		config.DebugLog.Printf("[provider] Turn finished: %d blocks, stop_reason=%s",
			len(turn.Blocks), turn.StopReason)
	}

	return turn, nil
}

// GetModel returns the active model name.
func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

// SetModel changes the active model.
func (p *AnthropicProvider) SetModel(m string) {
	p.model = anthropic.Model(m)
}

// KnownModels returns a curated list of model names; the messages API has
// no list endpoint.
func (p *AnthropicProvider) KnownModels() []string {
	models := []anthropic.Model{
		anthropic.ModelClaudeSonnet4_5_20250929,
		anthropic.ModelClaude3_5Haiku20241022,
		anthropic.ModelClaude_3_Opus_20240229,
		anthropic.ModelClaude_3_Haiku_20240307,
	}

	result := make([]string, 0, len(models))
	for _, m := range models {
		result = append(result, string(m))
	}
	return result
}

// Ping makes a minimal request to verify connectivity and credentials.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})

	if err != nil {
		return fmt.Errorf("ping failed: %w", wrapAPIError(err))
	}
	return nil
}

func (p *AnthropicProvider) buildParams(messages []model.Message, tools []mcptypes.Tool) anthropic.MessageNewParams {
	anthropicMessages, systemPrompt := convertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:       p.model,
		Messages:    anthropicMessages,
		MaxTokens:   p.maxTokens, // Required by the API
		Temperature: anthropic.Float(p.temperature),
	}

	if len(systemPrompt) > 0 {
		params.System = systemPrompt
	}

	if len(tools) > 0 {
		params.Tools = mcp.ConvertToolsToAnthropicFormat(tools)
	}

	return params
}
