// Package view derives everything the screen shows from a state snapshot.
// Nothing here has side effects; the TUI and the CLI both render a Frame.
package view

import (
	"fmt"

	"tasklist/model"
)

// Frame is the derived view of one state snapshot.
type Frame struct {
	Filter model.Filter
	// Tasks holds the tasks that pass Filter, in insertion order.
	Tasks []model.Task

	Total          int
	ActiveCount    int
	CompletedCount int

	// EmptyMessage is set only when Tasks is empty.
	EmptyMessage string
	// ShowFooter depends on the unfiltered list, not on Tasks.
	ShowFooter         bool
	ShowClearCompleted bool

	Dark    bool
	Palette Palette
}

// Derive computes the frame for s.
func Derive(s model.State) Frame {
	filter := s.Filter
	if !filter.Valid() {
		filter = model.FilterAll
	}
	active, completed := Counts(s.Tasks)
	visible := FilterTasks(s.Tasks, filter)

	f := Frame{
		Filter:             filter,
		Tasks:              visible,
		Total:              len(s.Tasks),
		ActiveCount:        active,
		CompletedCount:     completed,
		ShowFooter:         len(s.Tasks) > 0,
		ShowClearCompleted: completed > 0,
		Dark:               s.Dark,
		Palette:            PaletteFor(s.Dark),
	}
	if len(visible) == 0 {
		f.EmptyMessage = EmptyMessage(filter)
	}
	return f
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []model.Task, f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(f, t.Completed) {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the number of active and completed tasks.
func Counts(tasks []model.Task) (active, completed int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

// EmptyMessage is the placeholder shown when no task passes f.
func EmptyMessage(f model.Filter) string {
	switch f {
	case model.FilterActive:
		return "No active todos"
	case model.FilterCompleted:
		return "No completed todos"
	default:
		return "No todos yet"
	}
}

// ItemsLeft formats the footer counter.
func ItemsLeft(active int) string {
	if active == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", active)
}

func matchesFilter(f model.Filter, completed bool) bool {
	switch f {
	case model.FilterActive:
		return !completed
	case model.FilterCompleted:
		return completed
	default:
		return true
	}
}
