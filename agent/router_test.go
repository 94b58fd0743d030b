package agent

import (
	"testing"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/tools"
)

func TestRouteMessage(t *testing.T) {
	cases := []struct {
		name  string
		calls []core.ToolCall
		want  Route
	}{
		{"no tool calls", nil, RouteFinalize},
		{"memory", []core.ToolCall{{Name: tools.NameStoreMemory}}, RouteStoreMemory},
		{"todo", []core.ToolCall{{Name: tools.NameAddTodo}}, RouteUpdateTodos},
		{"profile", []core.ToolCall{{Name: tools.NameUpdateProfile}}, RouteUpdateProfile},
		{"instructions", []core.ToolCall{{Name: tools.NameUpdateInstructions}}, RouteUpdateInstructions},
		{"unknown tool", []core.ToolCall{{Name: "does_not_exist"}}, RouteFinalize},
		{
			"first call wins",
			[]core.ToolCall{{Name: tools.NameAddTodo}, {Name: tools.NameStoreMemory}},
			RouteUpdateTodos,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := core.Message{Role: core.RoleAssistant, ToolCalls: tc.calls}
			if got := RouteMessage(msg); got != tc.want {
				t.Errorf("RouteMessage() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRouteKindRoundTrip(t *testing.T) {
	routes := []Route{RouteStoreMemory, RouteUpdateTodos, RouteUpdateProfile, RouteUpdateInstructions}
	for _, r := range routes {
		msg := core.Message{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{{Name: r.Kind().Name()}}}
		if got := RouteMessage(msg); got != r {
			t.Errorf("RouteMessage(%s call) = %v, want %v", r.Kind().Name(), got, r)
		}
	}
	if RouteFinalize.Kind() != tools.KindUnknown {
		t.Errorf("RouteFinalize.Kind() = %v, want KindUnknown", RouteFinalize.Kind())
	}
}
