package agent

import (
	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/tools"
)

// Route names the next step after a model response.
type Route int

const (
	// RouteFinalize speaks the response without running any tool.
	RouteFinalize Route = iota
	RouteStoreMemory
	RouteUpdateTodos
	RouteUpdateProfile
	RouteUpdateInstructions
)

// RouteMessage picks the next step from an assistant message. Only
// the FIRST tool call decides the branch; if the model mixes tools in
// one response, calls for other tools are dropped by the chosen
// handler's filter. A response without tool calls, or whose first
// call names an unknown tool, finalizes.
func RouteMessage(msg core.Message) Route {
	if len(msg.ToolCalls) == 0 {
		return RouteFinalize
	}
	switch tools.KindOf(msg.ToolCalls[0].Name) {
	case tools.KindStoreMemory:
		return RouteStoreMemory
	case tools.KindAddTodo:
		return RouteUpdateTodos
	case tools.KindUpdateProfile:
		return RouteUpdateProfile
	case tools.KindUpdateInstructions:
		return RouteUpdateInstructions
	default:
		return RouteFinalize
	}
}

// Kind returns the tool kind a route dispatches to, or KindUnknown
// for RouteFinalize.
func (r Route) Kind() tools.Kind {
	switch r {
	case RouteStoreMemory:
		return tools.KindStoreMemory
	case RouteUpdateTodos:
		return tools.KindAddTodo
	case RouteUpdateProfile:
		return tools.KindUpdateProfile
	case RouteUpdateInstructions:
		return tools.KindUpdateInstructions
	default:
		return tools.KindUnknown
	}
}

// String names the route for logging.
func (r Route) String() string {
	switch r {
	case RouteStoreMemory:
		return "store_memory"
	case RouteUpdateTodos:
		return "update_todos"
	case RouteUpdateProfile:
		return "update_profile"
	case RouteUpdateInstructions:
		return "update_instructions"
	default:
		return "finalize"
	}
}
