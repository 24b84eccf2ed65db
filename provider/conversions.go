package provider

import (
	"github.com/anthropics/anthropic-sdk-go"

	"atui/model"
)

// convertToAnthropicMessages converts conversation messages to Anthropic
// request format. System messages are lifted out of the turn sequence into
// system blocks, per the API contract.
func convertToAnthropicMessages(messages []model.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	anthropicMsgs := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
				Text: msg.Text(),
			})

		case model.RoleAssistant:
			if len(msg.Blocks) > 0 {
				anthropicMsgs = append(anthropicMsgs,
					anthropic.NewAssistantMessage(convertBlocks(msg.Blocks)...),
				)
			} else {
				anthropicMsgs = append(anthropicMsgs,
					anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)),
				)
			}

		default:
			// User messages, including tool_result feedback
			if len(msg.Blocks) > 0 {
				anthropicMsgs = append(anthropicMsgs,
					anthropic.NewUserMessage(convertBlocks(msg.Blocks)...),
				)
			} else {
				anthropicMsgs = append(anthropicMsgs,
					anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)),
				)
			}
		}
	}

	return anthropicMsgs, systemBlocks
}

// convertBlocks maps structured content blocks to Anthropic block params.
func convertBlocks(blocks []model.ContentBlock) []anthropic.ContentBlockParamUnion {
	out := make([]anthropic.ContentBlockParamUnion, 0, len(blocks))

	for _, b := range blocks {
		switch b.Type {
		case model.BlockText:
			out = append(out, anthropic.NewTextBlock(b.Text))

		case model.BlockToolUse:
			out = append(out, anthropic.ContentBlockParamUnion{
				OfToolUse: &anthropic.ToolUseBlockParam{
					ID:    b.ID,
					Name:  b.Name,
					Input: b.Input,
				},
			})

		case model.BlockToolResult:
			out = append(out, anthropic.ContentBlockParamUnion{
				OfToolResult: &anthropic.ToolResultBlockParam{
					ToolUseID: b.ToolUseID,
					IsError:   anthropic.Bool(b.IsError),
					Content: []anthropic.ToolResultBlockParamContentUnion{
						{OfText: &anthropic.TextBlockParam{Text: b.Content}},
					},
				},
			})
		}
	}

	return out
}
