package tools

// Definitions returns the fixed tool set the model is offered each turn.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        NameStoreMemory,
			Description: "Store an important fact about the user so it can be recalled in later conversations. Use for durable information: relationships, habits, events, anything worth remembering.",
			InputSchema: ObjectSchema(map[string]any{
				"value":   StringProperty("The fact to remember, phrased as a standalone statement"),
				"key":     StringProperty("Optional stable identifier; reusing a key overwrites the stored fact"),
				"context": StringProperty("Optional context about where this fact came up"),
			}, "value"),
		},
		{
			Name:        NameAddTodo,
			Description: "Add a new todo item to the user's task list.",
			InputSchema: ObjectSchema(map[string]any{
				"task":             StringProperty("The task description"),
				"time_to_complete": IntegerProperty("Estimated completion time in minutes"),
				"deadline":         StringProperty("When the task needs to be done by (RFC 3339 timestamp or YYYY-MM-DD)"),
			}, "task"),
		},
		{
			Name:        NameUpdateProfile,
			Description: "Update one field of the user's profile. Known fields: name, location, interests, preferences.",
			InputSchema: ObjectSchema(map[string]any{
				"field": StringEnumProperty("The profile field to update", "name", "location", "interests", "preferences"),
				"value": StringProperty("The new value for the field"),
			}, "field", "value"),
		},
		{
			Name:        NameUpdateInstructions,
			Description: "Update how the assistant should behave for a category of interactions (e.g. 'todo', 'reminders'). Later updates to the same category replace earlier ones.",
			InputSchema: ObjectSchema(map[string]any{
				"category":    StringProperty("The category of instruction"),
				"instruction": StringProperty("The new instruction text"),
			}, "category", "instruction"),
		},
	}
}
