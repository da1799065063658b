package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"tasklist/kv"
	"tasklist/model"
)

var (
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrUnknownAffordance = errors.New("unknown affordance")
)

// Repository persists the two records owned by the Service.
type Repository interface {
	LoadTasks() ([]model.Task, error)
	SaveTasks(tasks []model.Task) error
	LoadTheme() (bool, error)
	SaveTheme(dark bool) error
}

// Observer receives a snapshot after every mutation.
type Observer func(model.State)

// Service owns the task list, the theme flag and the active filter.
//
// One Service is created at startup and lives for the whole session. It is
// not safe for concurrent use: every call happens on the UI event loop.
// Each mutation updates memory, writes the affected record, then notifies
// observers. Write failures are logged and otherwise ignored.
type Service struct {
	repo   Repository
	logger *log.Logger
	state  model.State

	observers map[int]Observer
	nextObs   int

	now   func() time.Time
	newID func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the task id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a service with default state. Call Load to read
// persisted records.
func NewService(repo Repository, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		logger:    logger,
		state:     model.NewState(),
		observers: map[int]Observer{},
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads both records. Missing or unreadable records fall back to an
// empty list and the dark theme; failures are logged, never returned.
func (s *Service) Load() {
	tasks, err := s.repo.LoadTasks()
	switch {
	case err == nil:
		s.state.Tasks = tasks
	case errors.Is(err, kv.ErrNotFound):
		s.state.Tasks = []model.Task{}
	default:
		s.logger.Warn("could not load tasks; starting empty", "err", err)
		s.state.Tasks = []model.Task{}
	}

	dark, err := s.repo.LoadTheme()
	switch {
	case err == nil:
		s.state.Dark = dark
	case errors.Is(err, kv.ErrNotFound):
		s.state.Dark = true
	default:
		s.logger.Warn("could not load theme; using dark", "err", err)
		s.state.Dark = true
	}

	s.logger.Debug("state loaded", "tasks", len(s.state.Tasks), "dark", s.state.Dark)
	s.notify()
}

// State returns a copy of current state.
func (s *Service) State() model.State {
	return s.state.Clone()
}

// Tasks returns all tasks in insertion order, as a copy.
func (s *Service) Tasks() []model.Task {
	return s.State().Tasks
}

// Task returns the task with the given id.
func (s *Service) Task(id string) (model.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.state.Tasks[i], true
	}
	return model.Task{}, false
}

func (s *Service) Filter() model.Filter {
	return s.state.Filter
}

func (s *Service) Dark() bool {
	return s.state.Dark
}

// AddTask appends a task with the trimmed text. Blank text is a no-op and
// reports false; nothing is written in that case.
func (s *Service) AddTask(text string) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}
	task := model.Task{
		ID:        s.newID(),
		Text:      text,
		Completed: false,
		CreatedAt: s.now(),
	}
	s.state.Tasks = append(s.state.Tasks, task)
	s.saveTasks()
	s.notify()
	return task, true
}

// ToggleTask flips completion of the task with id. The list record is
// written even when no task matches.
func (s *Service) ToggleTask(id string) (model.Task, bool) {
	var (
		task  model.Task
		found bool
	)
	if i := s.indexOf(id); i >= 0 {
		s.state.Tasks[i].Completed = !s.state.Tasks[i].Completed
		task, found = s.state.Tasks[i], true
	}
	s.saveTasks()
	s.notify()
	return task, found
}

// DeleteTask removes the task with id and reports whether one was removed.
func (s *Service) DeleteTask(id string) bool {
	i := s.indexOf(id)
	if i >= 0 {
		s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
	}
	s.saveTasks()
	s.notify()
	return i >= 0
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Service) ClearCompleted() int {
	kept := make([]model.Task, 0, len(s.state.Tasks))
	for _, t := range s.state.Tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.state.Tasks) - len(kept)
	s.state.Tasks = kept
	s.saveTasks()
	s.notify()
	return removed
}

// SetTheme sets the theme flag (true is dark) and writes it.
func (s *Service) SetTheme(dark bool) {
	s.state.Dark = dark
	if err := s.repo.SaveTheme(dark); err != nil {
		s.logger.Error("could not persist theme", "err", err)
	}
	s.notify()
}

// ToggleTheme flips the theme flag and returns the new value.
func (s *Service) ToggleTheme() bool {
	s.SetTheme(!s.state.Dark)
	return s.state.Dark
}

// SetFilter changes the view filter. It is never persisted.
func (s *Service) SetFilter(f model.Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	s.state.Filter = f
	s.notify()
	return nil
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes it.
func (s *Service) Subscribe(fn Observer) (cancel func()) {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *Service) notify() {
	if len(s.observers) == 0 {
		return
	}
	for _, fn := range s.observers {
		fn(s.State())
	}
}

func (s *Service) saveTasks() {
	if err := s.repo.SaveTasks(s.state.Tasks); err != nil {
		s.logger.Error("could not persist tasks", "err", err, "tasks", len(s.state.Tasks))
	}
}

func (s *Service) indexOf(id string) int {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
