// Package recur expands weekly recurrence requests into concrete dated
// events. Expansion is a pure function of its inputs; it performs no I/O.
package recur

import (
	"errors"
	"strings"
	"time"

	"schedchat/internal/model"
)

// ErrNoDays is returned when a recurrence request names no weekdays.
var ErrNoDays = errors.New("recurring events require at least one day")

// DefaultCount is the occurrence count used when a request omits one.
const DefaultCount = 4

// weekdayNumbers maps lowercase weekday names to Monday-based numbers
// (monday=0 .. sunday=6).
var weekdayNumbers = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// Expand converts a weekly recurrence (set of weekday names, occurrences per
// day) into concrete events sharing description and timeOfDay.
//
// For each named day the first occurrence is the next calendar date with that
// weekday strictly after today: when today already is that weekday, the first
// occurrence lands a full week out, never on today itself. Subsequent
// occurrences step forward 7 days at a time, count in total.
//
// Unrecognized weekday names are skipped without error. The result is grouped
// by input day order, then by increasing date within each day.
//
// frequency is accepted for forward compatibility; only weekly semantics are
// implemented.
func Expand(description, timeOfDay, frequency string, days []string, count int, today time.Time) ([]model.Event, error) {
	_ = frequency

	if len(days) == 0 {
		return nil, ErrNoDays
	}
	// A non-positive count expands to nothing rather than erroring.
	if count < 0 {
		count = 0
	}

	events := make([]model.Event, 0, count*len(days))
	for _, day := range days {
		dayNum, ok := weekdayNumbers[strings.ToLower(day)]
		if !ok {
			continue
		}
		daysAhead := (dayNum - mondayBased(today) + 7) % 7
		if daysAhead == 0 {
			daysAhead = 7
		}
		date := today.AddDate(0, 0, daysAhead)
		for i := 0; i < count; i++ {
			events = append(events, model.Event{
				Description: description,
				Date:        date.Format("2006-01-02"),
				Time:        timeOfDay,
			})
			date = date.AddDate(0, 0, 7)
		}
	}
	return events, nil
}

// mondayBased converts Go's Sunday-based weekday to monday=0 numbering.
func mondayBased(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
