package agenda_test

import (
	"bytes"
	"strings"
	"testing"

	"schedchat/internal/agenda"
	"schedchat/internal/model"
)

func TestRender(t *testing.T) {
	sched := model.Schedule{Events: []model.Event{
		{Description: "standup", Date: "2024-05-01", Time: "09:00"},
		{Description: "dentist", Date: "2024-05-02", Time: "14:00"},
		{Description: "review", Date: "2024-05-01", Time: "16:00"},
	}}

	var buf bytes.Buffer
	agenda.Render(&buf, sched, "2024-05-01")
	out := buf.String()

	if !strings.Contains(out, "Agenda for 2024-05-01:") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "0. standup at 09:00") || !strings.Contains(out, "1. review at 16:00") {
		t.Errorf("missing day's events in store order: %q", out)
	}
	if strings.Contains(out, "dentist") {
		t.Errorf("other day's event leaked in: %q", out)
	}
}

func TestRenderEmptyDay(t *testing.T) {
	var buf bytes.Buffer
	agenda.Render(&buf, model.Schedule{}, "2024-05-01")
	if !strings.Contains(buf.String(), "No events scheduled.") {
		t.Errorf("missing empty notice: %q", buf.String())
	}
}
