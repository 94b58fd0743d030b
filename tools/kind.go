// Package tools defines the assistant's callable tools: their wire
// names and schemas, and the handlers that execute calls against the
// memory store.
package tools

// Tool names as the model sees them. These are wire constants: the
// router and handlers match on them exactly.
const (
	NameStoreMemory        = "upsert_memory"
	NameAddTodo            = "AddTodo"
	NameUpdateProfile      = "UpdateProfile"
	NameUpdateInstructions = "UpdateInstructions"
)

// Kind is the closed set of tools the assistant can be asked to run.
// Dispatching on Kind instead of raw strings keeps the switch
// exhaustiveness visible to the compiler.
type Kind int

const (
	KindUnknown Kind = iota
	KindStoreMemory
	KindAddTodo
	KindUpdateProfile
	KindUpdateInstructions
)

// KindOf maps a tool-call name to its Kind. Unrecognized names map to
// KindUnknown; callers treat that as "no tool branch".
func KindOf(name string) Kind {
	switch name {
	case NameStoreMemory:
		return KindStoreMemory
	case NameAddTodo:
		return KindAddTodo
	case NameUpdateProfile:
		return KindUpdateProfile
	case NameUpdateInstructions:
		return KindUpdateInstructions
	default:
		return KindUnknown
	}
}

// Name returns the wire name for the kind, or "" for KindUnknown.
func (k Kind) Name() string {
	switch k {
	case KindStoreMemory:
		return NameStoreMemory
	case KindAddTodo:
		return NameAddTodo
	case KindUpdateProfile:
		return NameUpdateProfile
	case KindUpdateInstructions:
		return NameUpdateInstructions
	default:
		return ""
	}
}
