// Package tools maps model-issued function calls onto schedule operations.
//
// Every operation returns a plain human-readable string that is echoed back
// into the conversation. Validation problems (missing argument, bad index,
// empty day list) are reported as such strings, never as errors; errors are
// reserved for persistence failures, which callers treat as fatal.
package tools

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"schedchat/internal/model"
	"schedchat/internal/recur"
	"schedchat/internal/schedule"
)

// Dispatcher executes the declared operations against a schedule store.
type Dispatcher struct {
	store *schedule.Store
	now   func() time.Time
}

// NewDispatcher creates a dispatcher bound to store. now may be nil, in which
// case time.Now is used.
func NewDispatcher(store *schedule.Store, now func() time.Time) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{store: store, now: now}
}

type handler func(d *Dispatcher, args map[string]any) (string, error)

var handlers = map[string]handler{
	"add_event":        (*Dispatcher).addEvent,
	"list_events":      (*Dispatcher).listEvents,
	"remove_event":     (*Dispatcher).removeEvent,
	"get_current_date": (*Dispatcher).currentDate,
}

// Dispatch runs the named operation with the given argument bundle. Unknown
// names yield a descriptive result string, not an error.
func (d *Dispatcher) Dispatch(name string, args map[string]any) (string, error) {
	h, ok := handlers[name]
	if !ok {
		return fmt.Sprintf("Unknown operation: %s.", name), nil
	}
	return h(d, args)
}

// addEventArgs is the validated argument bundle for add_event.
type addEventArgs struct {
	Description string
	Date        string
	Time        string
	Recurring   *recurringArgs
}

type recurringArgs struct {
	Frequency string
	Days      []string
	Count     int
}

func parseAddEventArgs(args map[string]any) addEventArgs {
	out := addEventArgs{
		Description: stringArg(args, "description"),
		Date:        stringArg(args, "date"),
		Time:        stringArg(args, "time"),
	}
	raw, ok := args["recurring"].(map[string]any)
	if !ok {
		return out
	}
	rec := &recurringArgs{
		Frequency: stringArg(raw, "frequency"),
		Days:      stringSliceArg(raw, "days"),
		Count:     intArg(raw, "count", recur.DefaultCount),
	}
	if rec.Frequency == "" {
		rec.Frequency = "weekly"
	}
	out.Recurring = rec
	return out
}

func (d *Dispatcher) addEvent(args map[string]any) (string, error) {
	a := parseAddEventArgs(args)

	switch {
	case a.Description == "":
		return "Description is required.", nil
	case a.Time == "":
		return "Time is required for all events.", nil
	case a.Recurring != nil:
		return d.addRecurring(a)
	case a.Date == "":
		return "Date is required for single events.", nil
	}

	event := model.Event{Description: a.Description, Date: a.Date, Time: a.Time}
	if err := d.store.Append(event); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added event: %s on %s at %s", a.Description, a.Date, a.Time), nil
}

func (d *Dispatcher) addRecurring(a addEventArgs) (string, error) {
	events, err := recur.Expand(a.Description, a.Time, a.Recurring.Frequency, a.Recurring.Days, a.Recurring.Count, d.now())
	if errors.Is(err, recur.ErrNoDays) {
		return "Days are required for recurring events.", nil
	}
	if err != nil {
		return "", err
	}

	added := make([]string, 0, len(events))
	for _, ev := range events {
		added = append(added, dayLabel(ev.Date)+" "+ev.Date)
	}
	if err := d.store.Append(events...); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added recurring events: %s on %s", a.Description, strings.Join(added, ", ")), nil
}

// dayLabel returns the lowercase weekday name for a YYYY-MM-DD date.
func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return strings.ToLower(t.Weekday().String())
}

func (d *Dispatcher) listEvents(args map[string]any) (string, error) {
	dateFilter := stringArg(args, "date")

	// Note: the displayed index is the position within the filtered result,
	// while remove_event interprets its index over the full store. With an
	// active date filter the two can disagree.
	var lines []string
	for _, ev := range d.store.Events() {
		if dateFilter != "" && ev.Date != dateFilter {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s on %s at %s", len(lines), ev.Description, ev.Date, ev.Time))
	}
	if len(lines) == 0 {
		if dateFilter != "" {
			return fmt.Sprintf("No events scheduled on %s.", dateFilter), nil
		}
		return "No events scheduled.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) removeEvent(args map[string]any) (string, error) {
	index := intArg(args, "index", -1)
	removed, err := d.store.RemoveAt(index)
	if errors.Is(err, schedule.ErrInvalidIndex) {
		return "Invalid index.", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed event: %s", removed.Description), nil
}

func (d *Dispatcher) currentDate(map[string]any) (string, error) {
	return d.now().Format("2006-01-02"), nil
}

// Argument extraction helpers. Function-call args arrive as a generic JSON
// object; numbers decode as float64.

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
