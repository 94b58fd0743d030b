package tools

import (
	"context"
	"fmt"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
)

// profileFields is the closed set of fields UpdateProfile accepts.
var profileFields = []string{"name", "location", "interests", "preferences"}

// ProfileHandler applies UpdateProfile calls to the single profile
// document stored at the fixed profile key. Unknown fields are
// rejected without touching the store.
type ProfileHandler struct {
	store memory.Store
}

// NewProfileHandler creates a handler writing to the given store.
func NewProfileHandler(store memory.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Kind reports the tool this handler serves.
func (h *ProfileHandler) Kind() Kind { return KindUpdateProfile }

// Execute applies every matching call to the profile document and
// returns one tool message per call.
func (h *ProfileHandler) Execute(ctx context.Context, userID string, calls []core.ToolCall) ([]core.Message, error) {
	matched := filterCalls(KindUpdateProfile, calls)
	ns := memory.Profile(userID)
	return fanOut(ctx, matched, func(ctx context.Context, call core.ToolCall) (string, error) {
		field := call.StringArg("field")
		if !isProfileField(field) {
			return fmt.Sprintf("Unknown profile field: %s", field), nil
		}
		// An empty value is a valid write: it clears the field.
		value := call.StringArg("value")

		existing, err := h.store.Get(ctx, ns, memory.ProfileKey)
		if err != nil {
			return "", fmt.Errorf("load profile: %w", err)
		}
		profile := emptyProfile()
		if existing != nil {
			for k, v := range existing.Value {
				profile[k] = v
			}
		}
		profile[field] = value

		if err := h.store.Put(ctx, ns, memory.ProfileKey, profile); err != nil {
			return "", fmt.Errorf("store profile: %w", err)
		}
		return fmt.Sprintf("Updated profile %s to: %s", field, value), nil
	})
}

func isProfileField(field string) bool {
	for _, known := range profileFields {
		if field == known {
			return true
		}
	}
	return false
}

// emptyProfile returns a profile document with every known field
// present so the prompt always renders a full profile.
func emptyProfile() map[string]any {
	profile := make(map[string]any, len(profileFields))
	for _, field := range profileFields {
		profile[field] = ""
	}
	return profile
}
