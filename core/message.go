// Package core holds the transcript types shared across the module:
// conversation messages and the tool calls they carry.
package core

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a structured request from the model to invoke a named tool
// with arguments. The ID is opaque and unique within the assistant message
// that carried the call.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// StringArg returns the named argument as a string, or "" if absent or
// not a string.
func (c ToolCall) StringArg(key string) string {
	v, _ := c.Arguments[key].(string)
	return v
}

// IntArg returns the named argument as an int. JSON numbers arrive as
// float64, so both forms are accepted.
func (c ToolCall) IntArg(key string) (int, bool) {
	switch v := c.Arguments[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// Message is one entry in the conversation transcript.
//
// ToolCalls is populated on assistant messages only. ToolCallID ties a
// tool message back to the call it answers; it must reference a call
// emitted by the immediately preceding assistant message.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// NewUserMessage creates a user message with the given text.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage creates an assistant message with the given text.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// NewToolMessage creates a tool result message answering the call with
// the given id.
func NewToolMessage(content string, toolCallID string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}
