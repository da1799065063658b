package model

import (
	"fmt"
	"strings"
	"time"
)

// Filter represents which tasks are shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// ParseFilter parses a case-insensitive filter name. Empty means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	if !f.Valid() {
		return "", fmt.Errorf("unknown filter %q", s)
	}
	return f, nil
}

// Task is an individual todo item.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// State is a snapshot of everything the renderer needs.
// Dark is the persisted theme flag; Filter is never persisted.
type State struct {
	Tasks  []Task
	Dark   bool
	Filter Filter
}

// NewState returns the state used when nothing has been persisted yet.
func NewState() State {
	return State{
		Tasks:  []Task{},
		Dark:   true,
		Filter: FilterAll,
	}
}

// Clone returns a copy of s that shares no slice memory with it.
func (s State) Clone() State {
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	s.Tasks = tasks
	return s
}
