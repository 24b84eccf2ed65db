package provider

import (
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"atui/config"
	"atui/model"
)

// blockState is one content block being assembled from stream events.
// Tool input arrives as partial JSON fragments that only parse once the
// block stops.
type blockState struct {
	blockType   string
	text        strings.Builder
	id          string
	name        string
	partialJSON strings.Builder
	input       map[string]any
}

// accumulator assembles streamed message events into finalized content
// blocks, keyed by the block index the API assigns. Unknown event shapes
// are skipped without aborting the stream.
type accumulator struct {
	blocks     map[int64]*blockState
	order      []int64
	stopReason string
}

func newAccumulator() *accumulator {
	return &accumulator{blocks: make(map[int64]*blockState)}
}

// handle folds one stream event into the accumulator. Text deltas are
// forwarded to callback as they arrive; a callback error aborts the stream
// and is returned unchanged.
func (a *accumulator) handle(event anthropic.MessageStreamEventUnion, callback model.StreamCallback) error {
	switch ev := event.AsAny().(type) {
	case anthropic.ContentBlockStartEvent:
		state := &blockState{}
		switch block := ev.ContentBlock.AsAny().(type) {
		case anthropic.TextBlock:
			state.blockType = model.BlockText
			state.text.WriteString(block.Text)
		case anthropic.ToolUseBlock:
			state.blockType = model.BlockToolUse
			state.id = block.ID
			state.name = block.Name
		default:
			return nil
		}
		a.blocks[ev.Index] = state
		a.order = append(a.order, ev.Index)

	case anthropic.ContentBlockDeltaEvent:
		state := a.blocks[ev.Index]
		if state == nil {
			return nil
		}
		switch delta := ev.Delta.AsAny().(type) {
		case anthropic.TextDelta:
			state.text.WriteString(delta.Text)
			if callback != nil {
				if err := callback(delta.Text); err != nil {
					return err
				}
			}
		case anthropic.InputJSONDelta:
			state.partialJSON.WriteString(delta.PartialJSON)
		}

	case anthropic.ContentBlockStopEvent:
		state := a.blocks[ev.Index]
		if state == nil || state.blockType != model.BlockToolUse {
			return nil
		}
		state.input = parseToolInput(state.partialJSON.String())

	case anthropic.MessageDeltaEvent:
		if ev.Delta.StopReason != "" {
			a.stopReason = string(ev.Delta.StopReason)
		}
	}

	return nil
}

// parseToolInput parses the accumulated partial JSON of a tool_use block.
// Empty or malformed input degrades to an empty object so a single bad
// block never kills the turn.
func parseToolInput(partial string) map[string]any {
	if strings.TrimSpace(partial) == "" {
		return map[string]any{}
	}

	var input map[string]any
	if err := json.Unmarshal([]byte(partial), &input); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[provider] Malformed tool input JSON (%v), defaulting to empty object", err)
		}
		return map[string]any{}
	}
	return input
}

// turn returns the finalized turn in block order.
func (a *accumulator) turn() *model.Turn {
	t := &model.Turn{StopReason: a.stopReason}

	for _, idx := range a.order {
		state := a.blocks[idx]
		switch state.blockType {
		case model.BlockText:
			t.Blocks = append(t.Blocks, model.TextBlock(state.text.String()))
		case model.BlockToolUse:
			input := state.input
			if input == nil {
				input = parseToolInput(state.partialJSON.String())
			}
			t.Blocks = append(t.Blocks, model.ContentBlock{
				Type:  model.BlockToolUse,
				ID:    state.id,
				Name:  state.name,
				Input: input,
			})
		}
	}

	return t
}
