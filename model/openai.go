package model

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	ooption "github.com/openai/openai-go/option"
	oresponses "github.com/openai/openai-go/responses"
	oshared "github.com/openai/openai-go/shared"

	"github.com/maltai/maltai-go/core"
)

// OpenAI is a Client backed by the OpenAI Responses API.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a client for the named OpenAI model.
func NewOpenAI(model, apiKey string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(ooption.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Generate runs one Responses API call and maps the output items back
// to a transcript message.
func (o *OpenAI) Generate(ctx context.Context, req *Request) (*core.Message, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	items, err := buildOpenAIInput(req.Messages)
	if err != nil {
		return nil, err
	}

	params := oresponses.ResponseNewParams{
		Model:           oshared.ResponsesModel(o.model),
		MaxOutputTokens: openai.Int(int64(maxTokens)),
		Input:           oresponses.ResponseNewParamsInputUnion{OfInputItemList: items},
	}
	if req.System != "" {
		params.Instructions = openai.String(req.System)
	}
	for _, def := range req.Tools {
		params.Tools = append(params.Tools, oresponses.ToolParamOfFunction(def.Name, def.InputSchema, false))
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses: %w", err)
	}

	msg := core.Message{Role: core.RoleAssistant}
	for _, item := range resp.Output {
		switch item.Type {
		case "message":
			for _, part := range item.AsMessage().Content {
				if part.Type != "output_text" {
					continue
				}
				if msg.Content != "" {
					msg.Content += "\n"
				}
				msg.Content += part.Text
			}
		case "function_call":
			args := map[string]any{}
			if item.Arguments != "" {
				if err := json.Unmarshal([]byte(item.Arguments), &args); err != nil {
					return nil, fmt.Errorf("decode tool arguments for %s: %w", item.Name, err)
				}
			}
			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:        item.CallID,
				Name:      item.Name,
				Arguments: args,
			})
		}
	}
	return &msg, nil
}

// buildOpenAIInput converts the transcript to Responses API input
// items. Assistant tool calls become function_call items and tool
// messages become function_call_output items, keyed by call id.
func buildOpenAIInput(messages []core.Message) ([]oresponses.ResponseInputItemUnionParam, error) {
	var items []oresponses.ResponseInputItemUnionParam
	for _, m := range messages {
		switch m.Role {
		case core.RoleUser:
			items = append(items, oresponses.ResponseInputItemParamOfMessage(m.Content, oresponses.EasyInputMessageRoleUser))
		case core.RoleAssistant:
			if m.Content != "" {
				items = append(items, oresponses.ResponseInputItemParamOfMessage(m.Content, oresponses.EasyInputMessageRoleAssistant))
			}
			for _, call := range m.ToolCalls {
				raw, err := json.Marshal(call.Arguments)
				if err != nil {
					return nil, fmt.Errorf("encode tool arguments for %s: %w", call.Name, err)
				}
				items = append(items, oresponses.ResponseInputItemParamOfFunctionCall(string(raw), call.ID, call.Name))
			}
		case core.RoleTool:
			items = append(items, oresponses.ResponseInputItemParamOfFunctionCallOutput(m.ToolCallID, m.Content))
		}
	}
	return items, nil
}
