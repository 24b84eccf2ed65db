package model

// Messages emitted by background work (agent loop, storage) and consumed by
// the bubbletea update loop.

type StreamChunkMsg struct {
	Chunk string
}

type StreamErrorMsg struct {
	Err error
}

type ToolUseMsg struct {
	Name      string
	Arguments map[string]any
}

type ToolResultMsg struct {
	Content string
	IsError bool
	Error   string
}

type NoticeMsg struct {
	Text string
}

// ExchangeDoneMsg signals that one full user exchange (including any tool
// loop iterations) has finished.
type ExchangeDoneMsg struct {
	FinalText string
	ToolCalls int
	Err       error
	Cancelled bool
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}
