package ui

import (
	"time"

	"atui/model"
)

// Message is one transcript entry as displayed. Rendered holds the
// markdown-rendered form; it starts equal to Content and is replaced when
// async rendering finishes.
type Message struct {
	Role      string
	Content   string
	Rendered  string
	Timestamp time.Time
}

// Aliases for the messages produced by background work.
type streamChunkMsg = model.StreamChunkMsg
type streamErrorMsg = model.StreamErrorMsg
type toolUseMsg = model.ToolUseMsg
type toolResultMsg = model.ToolResultMsg
type noticeMsg = model.NoticeMsg
type exchangeDoneMsg = model.ExchangeDoneMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
