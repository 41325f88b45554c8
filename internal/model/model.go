package model

// Event is a single schedule entry. Events have no identity field; an event
// is addressed by its position in the schedule's event list.
type Event struct {
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // free-form, e.g. "07:00" or "7pm"
}

// Schedule is the top-level structure stored in the schedule JSON file.
// Events keep insertion order, not chronological order.
type Schedule struct {
	Events []Event `json:"events"`
}
