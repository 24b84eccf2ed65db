package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"atui/model"
	"atui/tools"
)

// channelSink forwards agent loop events into the bubbletea update loop.
// Methods run on the exchange goroutine.
type channelSink struct {
	events chan tea.Msg
}

func (s channelSink) StreamText(chunk string) {
	s.events <- model.StreamChunkMsg{Chunk: chunk}
}

func (s channelSink) ToolUse(name string, args map[string]any) {
	s.events <- model.ToolUseMsg{Name: name, Arguments: args}
}

func (s channelSink) ToolResult(res tools.Result) {
	s.events <- model.ToolResultMsg{Content: res.Content, IsError: res.IsError, Error: res.Error}
}

func (s channelSink) Notice(text string) {
	s.events <- model.NoticeMsg{Text: text}
}

// startExchange launches one user exchange on its own goroutine and begins
// pumping its events.
func (a *App) startExchange(input string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelExchange = cancel
	a.events = make(chan tea.Msg, 64)
	a.streaming = true
	a.currentResp.Reset()

	go a.runExchange(ctx, input)

	return tea.Batch(a.waitEvent(), a.spinner.Tick)
}

func (a *App) runExchange(ctx context.Context, input string) {
	events := a.events
	defer close(events)

	session := a.handler.Session()
	systemPrompt := a.handler.SystemPrompt()

	var finalText string
	var toolCalls int
	var err error

	if a.handler.ToolsEnabled() {
		finalText, toolCalls, err = a.executor.RunWithTools(ctx, session, input, systemPrompt, channelSink{events: events})
	} else {
		finalText, err = a.executor.Chat(ctx, session, input, systemPrompt, func(chunk string) error {
			events <- model.StreamChunkMsg{Chunk: chunk}
			return ctx.Err()
		})
	}

	events <- model.ExchangeDoneMsg{
		FinalText: finalText,
		ToolCalls: toolCalls,
		Err:       err,
		Cancelled: errors.Is(err, context.Canceled),
	}
}

// waitEvent delivers the next event from the running exchange.
func (a *App) waitEvent() tea.Cmd {
	events := a.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
