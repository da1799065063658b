// Package store maps application state onto two independent records in a
// key-value storage: the serialized task list and the theme flag.
package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tasklist/kv"
	"tasklist/model"
)

// Record keys.
const (
	TasksKey = "todos"
	ThemeKey = "darkMode"
)

const schemaURL = "https://tasklist.local/schema/todos.json"

var (
	ErrInvalidTasks = errors.New("invalid persisted task list")
	ErrInvalidTheme = errors.New("invalid persisted theme flag")
)

//go:embed todos.schema.json
var todosSchema []byte

// Store reads and writes the persisted records.
type Store struct {
	kv     kv.Storage
	schema *jsonschema.Schema
}

// New wraps storage. The task list schema is compiled once here.
func New(storage kv.Storage) (*Store, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(todosSchema)); err != nil {
		return nil, fmt.Errorf("add task list schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task list schema: %w", err)
	}
	return &Store{kv: storage, schema: schema}, nil
}

// LoadTasks returns the persisted task list. It returns an error wrapping
// kv.ErrNotFound when nothing was saved yet, and one wrapping ErrInvalidTasks
// when the record does not parse or does not match the schema.
func (s *Store) LoadTasks() ([]model.Task, error) {
	raw, err := s.kv.Get(TasksKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", TasksKey, err)
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTasks, err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTasks, schemaErrorMessage(err))
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTasks, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// SaveTasks overwrites the task list record.
func (s *Store) SaveTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.kv.Set(TasksKey, string(data))
}

// LoadTheme returns the persisted theme flag (true is dark). The record is
// the literal text "true" or "false"; anything else wraps ErrInvalidTheme.
func (s *Store) LoadTheme() (bool, error) {
	raw, err := s.kv.Get(ThemeKey)
	if err != nil {
		return true, fmt.Errorf("read %s: %w", ThemeKey, err)
	}
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return true, fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
}

// SaveTheme overwrites the theme record.
func (s *Store) SaveTheme(dark bool) error {
	return s.kv.Set(ThemeKey, strconv.FormatBool(dark))
}

// schemaErrorMessage reports the first leaf cause with its instance location.
func schemaErrorMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
