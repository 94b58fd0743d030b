package model

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/tools"
)

// Anthropic is a Client backed by the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates a client for the named Claude model.
func NewAnthropic(model, apiKey string) *Anthropic {
	return &Anthropic{
		client: anthropic.NewClient(aoption.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Generate runs one Messages API call and maps the response back to a
// transcript message.
func (a *Anthropic) Generate(ctx context.Context, req *Request) (*core.Message, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(maxTokens),
		Messages:  buildAnthropicMessages(req.Messages),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if len(req.Tools) > 0 {
		params.Tools = buildAnthropicTools(req.Tools)
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	msg := core.Message{Role: core.RoleAssistant}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			if msg.Content != "" {
				msg.Content += "\n"
			}
			msg.Content += block.Text
		case "tool_use":
			args := map[string]any{}
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &args); err != nil {
					return nil, fmt.Errorf("decode tool input for %s: %w", block.Name, err)
				}
			}
			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: args,
			})
		}
	}
	return &msg, nil
}

// buildAnthropicMessages converts the transcript to API params. Tool
// results become tool_result blocks inside a user message; consecutive
// tool messages collapse into one user message, matching how the API
// expects results for a multi-call assistant turn.
func buildAnthropicMessages(messages []core.Message) []anthropic.MessageParam {
	var params []anthropic.MessageParam
	for i := 0; i < len(messages); i++ {
		m := messages[i]
		switch m.Role {
		case core.RoleUser:
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case core.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, call := range m.ToolCalls {
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    call.ID,
						Name:  call.Name,
						Input: call.Arguments,
					},
				})
			}
			if len(blocks) > 0 {
				params = append(params, anthropic.NewAssistantMessage(blocks...))
			}
		case core.RoleTool:
			var results []anthropic.ContentBlockParamUnion
			for ; i < len(messages) && messages[i].Role == core.RoleTool; i++ {
				results = append(results, anthropic.NewToolResultBlock(messages[i].ToolCallID, messages[i].Content, false))
			}
			i--
			params = append(params, anthropic.NewUserMessage(results...))
		}
	}
	return params
}

func buildAnthropicTools(defs []tools.Definition) []anthropic.ToolUnionParam {
	params := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		tool := anthropic.ToolParam{
			Name:        def.Name,
			Description: anthropic.String(def.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: def.InputSchema["properties"],
			},
		}
		if required, ok := def.InputSchema["required"].([]string); ok {
			tool.InputSchema.Required = required
		}
		params = append(params, anthropic.ToolUnionParam{OfTool: &tool})
	}
	return params
}
