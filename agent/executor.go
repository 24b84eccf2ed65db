package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atui/config"
	"atui/model"
	"atui/tools"
)

// DefaultMaxIterations caps the number of model calls in one tool loop.
const DefaultMaxIterations = 20

// progressEvery controls how often the loop reports that it is still
// working.
const progressEvery = 5

// Session is the conversation state the executor reads and mutates.
// Implemented by storage.Session.
type Session interface {
	Add(role, content string)
	MessagesForAPI(max int) []model.Message
	Rewind(n int) int
}

// EventSink receives progress events during an exchange. All methods are
// called from the executor's goroutine, in order.
type EventSink interface {
	StreamText(chunk string)
	ToolUse(name string, args map[string]any)
	ToolResult(res tools.Result)
	Notice(text string)
}

// Executor runs chat exchanges against a provider, orchestrating the tool
// loop and persisting only the final text of each exchange. Intermediate
// tool traffic lives in a transient message slice and is discarded when
// the exchange ends.
type Executor struct {
	provider      model.Provider
	registry      *tools.Registry
	heur          Heuristics
	maxIterations int
}

func NewExecutor(provider model.Provider, registry *tools.Registry) *Executor {
	return &Executor{
		provider:      provider,
		registry:      registry,
		heur:          DefaultHeuristics(),
		maxIterations: DefaultMaxIterations,
	}
}

// Chat runs a plain exchange with no tools. The user message is persisted
// before the call and rolled back if the call fails or is cancelled, so a
// failed exchange leaves the session untouched.
func (e *Executor) Chat(ctx context.Context, session Session, input, systemPrompt string, callback model.StreamCallback) (string, error) {
	session.Add(model.RoleUser, input)

	messages := e.history(session, systemPrompt)

	var full strings.Builder
	err := e.provider.Chat(ctx, messages, func(chunk string) error {
		full.WriteString(chunk)
		if callback != nil {
			return callback(chunk)
		}
		return nil
	})
	if err != nil {
		session.Rewind(1)
		return "", err
	}

	text := full.String()
	if text != "" {
		session.Add(model.RoleAssistant, text)
	}
	return text, nil
}

// RunWithTools runs a tool-enabled exchange: repeated model calls, each
// possibly requesting tool invocations, until the model answers without
// tools or the iteration ceiling forces a wrap-up. Returns the final text
// and the total number of tool calls made.
func (e *Executor) RunWithTools(ctx context.Context, session Session, input, systemPrompt string, sink EventSink) (string, int, error) {
	session.Add(model.RoleUser, input)

	sys := ToolSystemPrompt
	if systemPrompt != "" {
		sys = systemPrompt + "\n\n" + ToolSystemPrompt
	}

	messages := e.history(session, sys)
	toolList := e.registry.Tools()
	totalToolCalls := 0

	stream := func(chunk string) error {
		if sink != nil {
			sink.StreamText(chunk)
		}
		return ctx.Err()
	}

	for iteration := 0; iteration < e.maxIterations; iteration++ {
		if iteration > 0 && iteration%progressEvery == 0 && sink != nil {
			sink.Notice(fmt.Sprintf("Still working (%d tool iterations so far)", iteration))
		}

		turn, err := e.provider.ChatWithTools(ctx, messages, toolList, stream)
		if err != nil {
			session.Rewind(1)
			return "", totalToolCalls, err
		}

		calls := turn.ToolCalls()
		// A non-tool stop reason ends the exchange even when tool_use
		// blocks are present: a truncated turn carries incomplete tool
		// input that must not be executed.
		stopped := turn.StopReason != "" && turn.StopReason != "tool_use"
		if len(calls) == 0 || stopped {
			finalText := turn.Text()
			if stopped && len(calls) > 0 && config.DebugLog != nil {
				config.DebugLog.Printf("[agent] Discarding %d tool calls on stop_reason=%s",
					len(calls), turn.StopReason)
			}

			if e.heur.NeedsDetailedReport(finalText, totalToolCalls) {
				if config.DebugLog != nil {
					config.DebugLog.Printf("[agent] Final answer incomplete (%d chars, %d tool calls), requesting report",
						len(finalText), totalToolCalls)
				}
				if sink != nil {
					sink.Notice("Response looks incomplete, requesting the full report")
				}

				report, err := e.requestReport(ctx, messages, turn, stream)
				if err != nil {
					session.Rewind(1)
					return "", totalToolCalls, err
				}
				if strings.TrimSpace(report) != "" {
					finalText = report
				}
			}

			if finalText != "" {
				session.Add(model.RoleAssistant, finalText)
			}
			return finalText, totalToolCalls, nil
		}

		messages = append(messages, model.Message{
			Role:      model.RoleAssistant,
			Blocks:    turn.Blocks,
			Timestamp: time.Now(),
		})

		results := make([]model.ContentBlock, 0, len(calls))
		for _, call := range calls {
			if sink != nil {
				sink.ToolUse(call.Name, call.Arguments)
			}

			res := e.registry.Execute(ctx, call.Name, call.Arguments)
			totalToolCalls++

			if sink != nil {
				sink.ToolResult(res)
			}

			content := res.Content
			if res.IsError {
				content = res.Error
			}
			results = append(results, model.ToolResultBlock(call.ID, content, res.IsError))
		}

		messages = append(messages, model.Message{
			Role:      model.RoleUser,
			Blocks:    results,
			Timestamp: time.Now(),
		})
	}

	// Ceiling reached: one last call with tools withheld.
	if sink != nil {
		sink.Notice(fmt.Sprintf("Reached the %d-iteration limit, asking for a final answer", e.maxIterations))
	}

	messages = append(messages, model.Message{
		Role:      model.RoleUser,
		Blocks:    []model.ContentBlock{model.TextBlock(iterationLimitPrompt)},
		Timestamp: time.Now(),
	})

	turn, err := e.provider.ChatWithTools(ctx, messages, nil, stream)
	if err != nil {
		session.Rewind(1)
		return "", totalToolCalls, err
	}

	finalText := turn.Text()
	if finalText != "" {
		session.Add(model.RoleAssistant, finalText)
	}
	return finalText, totalToolCalls, nil
}

// requestReport issues the single no-tools follow-up asking for the full
// deliverable. The incomplete turn stays in the transient history so the
// model can see what it already said.
func (e *Executor) requestReport(ctx context.Context, messages []model.Message, lastTurn *model.Turn, stream model.StreamCallback) (string, error) {
	// Only text blocks are replayed: a tool_use block without its result
	// would make the follow-up request invalid.
	var textBlocks []model.ContentBlock
	for _, b := range lastTurn.Blocks {
		if b.Type == model.BlockText {
			textBlocks = append(textBlocks, b)
		}
	}

	followUp := messages
	if len(textBlocks) > 0 {
		followUp = append(followUp, model.Message{
			Role:      model.RoleAssistant,
			Blocks:    textBlocks,
			Timestamp: time.Now(),
		})
	}
	followUp = append(followUp, model.Message{
		Role:      model.RoleUser,
		Blocks:    []model.ContentBlock{model.TextBlock(detailedReportPrompt)},
		Timestamp: time.Now(),
	})

	turn, err := e.provider.ChatWithTools(ctx, followUp, nil, stream)
	if err != nil {
		return "", err
	}
	return turn.Text(), nil
}

// history builds the transient message slice for an exchange: the optional
// system prompt followed by the persisted conversation.
func (e *Executor) history(session Session, systemPrompt string) []model.Message {
	persisted := session.MessagesForAPI(0)

	messages := make([]model.Message, 0, len(persisted)+1)
	if systemPrompt != "" {
		messages = append(messages, model.Message{Role: model.RoleSystem, Content: systemPrompt})
	}
	return append(messages, persisted...)
}
