package tools_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"schedchat/internal/model"
	"schedchat/internal/schedule"
	"schedchat/internal/tools"
)

// fixedNow is 2024-05-01, a Wednesday.
func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newDispatcher(t *testing.T) (*tools.Dispatcher, *schedule.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	store := schedule.Open(path)
	return tools.NewDispatcher(store, fixedNow), store, path
}

func dispatch(t *testing.T, d *tools.Dispatcher, name string, args map[string]any) string {
	t.Helper()
	result, err := d.Dispatch(name, args)
	if err != nil {
		t.Fatalf("Dispatch(%s): %v", name, err)
	}
	return result
}

func TestAddEventValidation(t *testing.T) {
	d, store, _ := newDispatcher(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing description", map[string]any{}, "Description is required."},
		{"missing time", map[string]any{"description": "yoga"}, "Time is required for all events."},
		{"missing date", map[string]any{"description": "yoga", "time": "07:00"}, "Date is required for single events."},
		{
			"empty recurring days",
			map[string]any{"description": "yoga", "time": "07:00", "recurring": map[string]any{"frequency": "weekly"}},
			"Days are required for recurring events.",
		},
	}
	for _, tt := range tests {
		if got := dispatch(t, d, "add_event", tt.args); got != tt.want {
			t.Errorf("%s: result = %q, want %q", tt.name, got, tt.want)
		}
	}
	if len(store.Events()) != 0 {
		t.Errorf("failed validations mutated the store: %d events", len(store.Events()))
	}
}

func TestAddSingleEvent(t *testing.T) {
	d, _, path := newDispatcher(t)

	result := dispatch(t, d, "add_event", map[string]any{
		"description": "dentist",
		"date":        "2024-05-02",
		"time":        "14:00",
	})
	if result != "Added event: dentist on 2024-05-02 at 14:00" {
		t.Errorf("result = %q", result)
	}

	events := schedule.Open(path).Events()
	if len(events) != 1 {
		t.Fatalf("persisted events = %d, want 1", len(events))
	}
	if events[0].Description != "dentist" {
		t.Errorf("persisted event = %+v", events[0])
	}
}

func TestAddRecurringEvent(t *testing.T) {
	d, _, path := newDispatcher(t)

	// today is Wednesday 2024-05-01; monday count 2 => 05-06 and 05-13.
	result := dispatch(t, d, "add_event", map[string]any{
		"description": "yoga",
		"time":        "07:00",
		"recurring": map[string]any{
			"frequency": "weekly",
			"days":      []any{"monday"},
			"count":     float64(2),
		},
	})
	want := "Added recurring events: yoga on monday 2024-05-06, monday 2024-05-13"
	if result != want {
		t.Errorf("result = %q, want %q", result, want)
	}

	events := schedule.Open(path).Events()
	if len(events) != 2 {
		t.Fatalf("persisted events = %d, want 2", len(events))
	}
	if events[0].Date != "2024-05-06" || events[1].Date != "2024-05-13" {
		t.Errorf("persisted dates = %s, %s", events[0].Date, events[1].Date)
	}
}

func TestAddRecurringDefaultCount(t *testing.T) {
	d, store, _ := newDispatcher(t)

	dispatch(t, d, "add_event", map[string]any{
		"description": "gym",
		"time":        "18:00",
		"recurring":   map[string]any{"days": []any{"monday", "wednesday"}},
	})
	// Default count is 4 per day.
	if len(store.Events()) != 8 {
		t.Errorf("events = %d, want 8", len(store.Events()))
	}
}

func TestAddRecurringNegativeCount(t *testing.T) {
	d, store, _ := newDispatcher(t)

	result := dispatch(t, d, "add_event", map[string]any{
		"description": "gym",
		"time":        "18:00",
		"recurring":   map[string]any{"days": []any{"monday"}, "count": float64(-1)},
	})
	if !strings.HasPrefix(result, "Added recurring events: gym on") {
		t.Errorf("result = %q", result)
	}
	if len(store.Events()) != 0 {
		t.Errorf("events = %d, want 0 for a negative count", len(store.Events()))
	}
}

func TestListEvents(t *testing.T) {
	d, store, _ := newDispatcher(t)

	if got := dispatch(t, d, "list_events", map[string]any{}); got != "No events scheduled." {
		t.Errorf("empty list = %q", got)
	}
	if got := dispatch(t, d, "list_events", map[string]any{"date": "2024-05-02"}); got != "No events scheduled on 2024-05-02." {
		t.Errorf("empty filtered list = %q", got)
	}

	if err := store.Append(
		model.Event{Description: "a", Date: "2024-05-01", Time: "09:00"},
		model.Event{Description: "b", Date: "2024-05-02", Time: "10:00"},
		model.Event{Description: "c", Date: "2024-05-02", Time: "11:00"},
	); err != nil {
		t.Fatal(err)
	}

	got := dispatch(t, d, "list_events", map[string]any{})
	want := "0. a on 2024-05-01 at 09:00\n1. b on 2024-05-02 at 10:00\n2. c on 2024-05-02 at 11:00"
	if got != want {
		t.Errorf("full list = %q, want %q", got, want)
	}

	// Filtered indices restart at 0 over the filtered subset.
	got = dispatch(t, d, "list_events", map[string]any{"date": "2024-05-02"})
	want = "0. b on 2024-05-02 at 10:00\n1. c on 2024-05-02 at 11:00"
	if got != want {
		t.Errorf("filtered list = %q, want %q", got, want)
	}
}

func TestRemoveEvent(t *testing.T) {
	d, store, _ := newDispatcher(t)
	if err := store.Append(
		model.Event{Description: "a", Date: "2024-05-01", Time: "09:00"},
		model.Event{Description: "b", Date: "2024-05-02", Time: "10:00"},
		model.Event{Description: "c", Date: "2024-05-03", Time: "11:00"},
	); err != nil {
		t.Fatal(err)
	}

	if got := dispatch(t, d, "remove_event", map[string]any{"index": float64(1)}); got != "Removed event: b" {
		t.Errorf("result = %q", got)
	}

	// Remaining events renumber from 0.
	got := dispatch(t, d, "list_events", map[string]any{})
	want := "0. a on 2024-05-01 at 09:00\n1. c on 2024-05-03 at 11:00"
	if got != want {
		t.Errorf("list after remove = %q, want %q", got, want)
	}
}

func TestRemoveEventInvalidIndex(t *testing.T) {
	d, store, _ := newDispatcher(t)
	if err := store.Append(model.Event{Description: "a", Date: "2024-05-01", Time: "09:00"}); err != nil {
		t.Fatal(err)
	}

	for _, args := range []map[string]any{
		{"index": float64(1)},
		{"index": float64(-1)},
		{}, // missing index defaults to -1
	} {
		if got := dispatch(t, d, "remove_event", args); got != "Invalid index." {
			t.Errorf("remove_event(%v) = %q, want %q", args, got, "Invalid index.")
		}
	}
	if len(store.Events()) != 1 {
		t.Errorf("store mutated by invalid remove: %d events", len(store.Events()))
	}
}

func TestGetCurrentDate(t *testing.T) {
	d, _, _ := newDispatcher(t)
	if got := dispatch(t, d, "get_current_date", nil); got != "2024-05-01" {
		t.Errorf("get_current_date = %q, want 2024-05-01", got)
	}
}

func TestUnknownOperation(t *testing.T) {
	d, _, _ := newDispatcher(t)
	got := dispatch(t, d, "reticulate_splines", nil)
	if !strings.Contains(got, "Unknown operation") {
		t.Errorf("result = %q, want an unknown-operation message", got)
	}
}
