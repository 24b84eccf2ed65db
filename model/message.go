package model

import "time"

// Roles used in conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content block types produced and consumed by the chat API.
const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ContentBlock is one element of a structured message. Exactly one of the
// type-specific field groups is populated depending on Type.
type ContentBlock struct {
	Type string `json:"type"`

	// BlockText
	Text string `json:"text,omitempty"`

	// BlockToolUse
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`

	// BlockToolResult
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

// TextBlock builds a plain text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// ToolResultBlock builds a tool_result block referencing a tool invocation.
func ToolResultBlock(toolUseID, content string, isError bool) ContentBlock {
	return ContentBlock{
		Type:      BlockToolResult,
		ToolUseID: toolUseID,
		Content:   content,
		IsError:   isError,
	}
}

// Message represents a chat message in the conversation. Simple messages
// carry Content; tool exchanges carry Blocks instead. When Blocks is
// non-empty it takes precedence over Content.
type Message struct {
	Role      string
	Content   string
	Blocks    []ContentBlock
	Timestamp time.Time
}

// Text returns the concatenated text of the message: Content for plain
// messages, the joined text blocks otherwise.
func (m Message) Text() string {
	if len(m.Blocks) == 0 {
		return m.Content
	}
	var out string
	for _, b := range m.Blocks {
		if b.Type == BlockText {
			out += b.Text
		}
	}
	return out
}

// ToolCall describes a tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Turn is the finalized result of one tool-aware model call.
type Turn struct {
	Blocks     []ContentBlock
	StopReason string
}

// Text returns the concatenated text blocks of the turn.
func (t *Turn) Text() string {
	var out string
	for _, b := range t.Blocks {
		if b.Type == BlockText {
			out += b.Text
		}
	}
	return out
}

// ToolCalls returns the tool_use blocks of the turn as ToolCall values.
func (t *Turn) ToolCalls() []ToolCall {
	var calls []ToolCall
	for _, b := range t.Blocks {
		if b.Type == BlockToolUse {
			calls = append(calls, ToolCall{ID: b.ID, Name: b.Name, Arguments: b.Input})
		}
	}
	return calls
}
