package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"schedchat/internal/model"
)

// clockLayouts are the time-of-day forms Export attempts to parse. Schedule
// times are free-form text; anything unparseable becomes an all-day event.
var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3 PM", "3PM", "3pm", "3:04pm"}

// Export writes the schedule as a VCALENDAR. Event times that parse as a
// clock produce one-hour timed entries; everything else is exported all-day.
func Export(w io.Writer, sched model.Schedule) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//schedchat//EN")

	now := time.Now()
	for i, ev := range sched.Events {
		date, err := time.ParseInLocation("2006-01-02", ev.Date, time.Local)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(fmt.Sprintf("schedchat-%d-%s@schedchat", i, ev.Date))
		ve.SetDtStampTime(now)
		ve.SetSummary(ev.Description)

		if clock, ok := parseClock(ev.Time); ok {
			start := date.Add(clock)
			ve.SetStartAt(start)
			ve.SetEndAt(start.Add(time.Hour))
		} else {
			ve.SetAllDayStartAt(date)
			ve.SetAllDayEndAt(date.AddDate(0, 0, 1))
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// parseClock interprets a free-form time string as a time-of-day offset.
func parseClock(s string) (time.Duration, bool) {
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
	}
	return 0, false
}
