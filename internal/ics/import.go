// Package ics converts between the schedule and iCalendar files: importing
// VEVENTs (expanding RRULEs within a date horizon) and exporting the current
// schedule as a VCALENDAR.
package ics

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"schedchat/internal/model"
)

// maxOccurrencesPerEvent caps RRULE expansion so a malformed rule cannot
// flood the schedule.
const maxOccurrencesPerEvent = 500

// ReadFile parses the ICS file at path and returns its events expanded into
// concrete schedule entries within [from, to].
func ReadFile(path string, from, to time.Time) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ICS file: %w", err)
	}
	defer f.Close()
	return Read(f, from, to)
}

// Read parses an ICS payload and expands every VEVENT into concrete events
// within [from, to]. Recurring events are expanded via their RRULE with
// EXDATEs removed; events that cannot be parsed are skipped.
func Read(r io.Reader, from, to time.Time) ([]model.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing ICS: %w", err)
	}

	var events []model.Event
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}

		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = p.Value
		}

		allDay := false
		if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil && !strings.Contains(p.Value, "T") {
			allDay = true
		}

		var occurrences []time.Time
		if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
			occurrences, err = expandRule(p.Value, ve, start, from, to)
			if err != nil {
				continue
			}
		} else if !start.Before(from) && !start.After(to) {
			occurrences = []time.Time{start}
		}

		for _, occ := range occurrences {
			events = append(events, model.Event{
				Description: summary,
				Date:        occ.Format("2006-01-02"),
				Time:        clockOf(occ, allDay),
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
	return events, nil
}

// expandRule expands an RRULE (with EXDATEs removed) into occurrence start
// times within [from, to], capped at maxOccurrencesPerEvent.
func expandRule(raw string, ve *ical.VEvent, start, from, to time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE %q: %w", raw, err)
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range exDates(ve) {
		set.ExDate(ex.In(start.Location()))
	}

	occ := set.Between(from.In(start.Location()), to.In(start.Location()), true)
	if len(occ) > maxOccurrencesPerEvent {
		occ = occ[:maxOccurrencesPerEvent]
	}
	return occ, nil
}

// exDates collects EXDATE values; each property may carry a comma-separated
// list.
func exDates(ve *ical.VEvent) []time.Time {
	var out []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// parseICSTime parses a basic ICS date/date-time string.
func parseICSTime(v string) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}

// clockOf renders an occurrence's time-of-day field.
func clockOf(t time.Time, allDay bool) string {
	if allDay {
		return "all day"
	}
	return t.Format("15:04")
}
