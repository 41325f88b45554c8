package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"schedchat/internal/model"
)

// ErrInvalidIndex is returned by RemoveAt for an out-of-range index.
var ErrInvalidIndex = errors.New("invalid event index")

// Store owns the in-memory schedule and its persistence. The file is fully
// read on Open and fully rewritten after every mutation; no handle is held
// between calls.
type Store struct {
	path  string
	sched model.Schedule
}

// Open loads the schedule from path. A missing or unreadable file is treated
// as an empty schedule, never as a failure.
func Open(path string) *Store {
	s := &Store{path: path, sched: model.Schedule{Events: []model.Event{}}}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var sched model.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		// Back up the corrupt file so the next Save does not bury it.
		_ = os.Rename(path, path+".corrupt")
		return s
	}
	if sched.Events == nil {
		sched.Events = []model.Event{}
	}
	s.sched = sched
	return s
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Events returns the current in-memory event list in insertion order.
// Callers must not mutate the returned slice.
func (s *Store) Events() []model.Event {
	return s.sched.Events
}

// Snapshot returns a copy of the full schedule.
func (s *Store) Snapshot() model.Schedule {
	events := make([]model.Event, len(s.sched.Events))
	copy(events, s.sched.Events)
	return model.Schedule{Events: events}
}

// Append adds events to the end of the schedule and persists once for the
// whole batch.
func (s *Store) Append(events ...model.Event) error {
	s.sched.Events = append(s.sched.Events, events...)
	return s.Save()
}

// RemoveAt deletes the event at index in the full, unfiltered sequence and
// persists. It returns the removed event, or ErrInvalidIndex if index is
// outside [0, len(events)); the store is left unchanged in that case.
func (s *Store) RemoveAt(index int) (model.Event, error) {
	if index < 0 || index >= len(s.sched.Events) {
		return model.Event{}, ErrInvalidIndex
	}
	removed := s.sched.Events[index]
	s.sched.Events = append(s.sched.Events[:index], s.sched.Events[index+1:]...)
	if err := s.Save(); err != nil {
		return model.Event{}, err
	}
	return removed, nil
}

// Save atomically rewrites the schedule file with the full in-memory state.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("schedule store: creating directories: %w", err)
	}

	data, err := json.MarshalIndent(s.sched, "", "  ")
	if err != nil {
		return fmt.Errorf("schedule store: marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("schedule store: writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("schedule store: renaming temp file: %w", err)
	}
	return nil
}
