package tools

import "schedchat/internal/gemini"

// Declarations is the fixed tool schema advertised to the model.
var Declarations = []gemini.FunctionDeclaration{
	{
		Name:        "add_event",
		Description: "Add a new event to the schedule. For recurring events, specify the recurring details.",
		Parameters: objReq(map[string]any{
			"description": prop("string", "Description of the event"),
			"date":        prop("string", "Date of the event (for single events)"),
			"time":        prop("string", "Time of the event"),
			"recurring": map[string]any{
				"type":        "object",
				"description": "Details for recurring events",
				"properties": map[string]any{
					"frequency": prop("string", "e.g., weekly"),
					"days": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "List of days, e.g., ['monday', 'tuesday']",
					},
					"count": prop("integer", "Number of occurrences"),
				},
			},
		}, "description"),
	},
	{
		Name:        "list_events",
		Description: "List all events in the schedule, optionally filtered by date",
		Parameters: obj(map[string]any{
			"date": prop("string", "Optional date filter in YYYY-MM-DD format"),
		}),
	},
	{
		Name:        "remove_event",
		Description: "Remove an event by index (0-based)",
		Parameters: objReq(map[string]any{
			"index": prop("integer", "Index of the event to remove"),
		}, "index"),
	},
	{
		Name:        "get_current_date",
		Description: "Get the current date in YYYY-MM-DD format",
		Parameters:  obj(nil),
	},
}

// Helper functions for building JSON Schema objects.

func prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}

func obj(properties map[string]any) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}

func objReq(properties map[string]any, required ...string) map[string]any {
	s := obj(properties)
	s["required"] = required
	return s
}
