// Package agenda renders the day's events and, in watch mode, reprints them
// on a cron schedule.
package agenda

import (
	"context"
	"fmt"
	"io"

	"github.com/robfig/cron/v3"

	"schedchat/internal/model"
)

// Render writes the events dated date (YYYY-MM-DD) to w, preserving store
// order. Indices shown are positions within the day's filtered list.
func Render(w io.Writer, sched model.Schedule, date string) {
	fmt.Fprintf(w, "Agenda for %s:\n", date)
	n := 0
	for _, ev := range sched.Events {
		if ev.Date != date {
			continue
		}
		fmt.Fprintf(w, "  %d. %s at %s\n", n, ev.Description, ev.Time)
		n++
	}
	if n == 0 {
		fmt.Fprintln(w, "  No events scheduled.")
	}
}

// Loader re-reads the schedule for each tick, so watch mode always prints
// current state even when another process mutated the file.
type Loader func() model.Schedule

// Watch prints the agenda immediately, then again on every firing of spec
// (standard 5-field cron syntax), until ctx is cancelled.
func Watch(ctx context.Context, w io.Writer, load Loader, spec string, today func() string) error {
	run := func() {
		Render(w, load(), today())
	}
	run()

	c := cron.New()
	if _, err := c.AddFunc(spec, run); err != nil {
		return fmt.Errorf("invalid agenda cron spec %q: %w", spec, err)
	}
	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
