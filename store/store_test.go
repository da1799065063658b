package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"tasklist/kv"
	"tasklist/model"
)

func newTestStore(t *testing.T, storage kv.Storage) *Store {
	t.Helper()
	s, err := New(storage)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	return s
}

func sampleTasks() []model.Task {
	now := time.Date(2026, 2, 19, 12, 30, 0, 0, time.UTC)
	return []model.Task{
		{ID: "t1", Text: "Buy milk", Completed: false, CreatedAt: now},
		{ID: "t2", Text: "Read book", Completed: true, CreatedAt: now.Add(time.Minute)},
	}
}

func TestLoadTasksMissingRecord(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())

	if _, err := s.LoadTasks(); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected kv.ErrNotFound, got %v", err)
	}
}

func TestSaveThenLoadTasks(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	want := sampleTasks()

	if err := s.SaveTasks(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("save/load mismatch\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestSaveNilTasksWritesEmptyArray(t *testing.T) {
	mem := kv.NewMemory()
	s := newTestStore(t, mem)

	if err := s.SaveTasks(nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	raw, err := mem.Get(TasksKey)
	if err != nil {
		t.Fatalf("raw get failed: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty JSON array, got %q", raw)
	}
	got, err := s.LoadTasks()
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v %v", got, err)
	}
}

func TestLoadTasksRejectsCorruptRecord(t *testing.T) {
	mem := kv.NewMemory()
	_ = mem.Set(TasksKey, "[{not json")
	s := newTestStore(t, mem)

	if _, err := s.LoadTasks(); !errors.Is(err, ErrInvalidTasks) {
		t.Fatalf("expected ErrInvalidTasks, got %v", err)
	}
}

func TestLoadTasksRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"not an array":  `{"id":"t1"}`,
		"missing text":  `[{"id":"t1","completed":false,"createdAt":"2026-02-19T12:00:00Z"}]`,
		"empty id":      `[{"id":"","text":"x","completed":false,"createdAt":"2026-02-19T12:00:00Z"}]`,
		"string flag":   `[{"id":"t1","text":"x","completed":"yes","createdAt":"2026-02-19T12:00:00Z"}]`,
		"bad timestamp": `[{"id":"t1","text":"x","completed":false,"createdAt":"yesterday"}]`,
	}
	for name, raw := range cases {
		mem := kv.NewMemory()
		_ = mem.Set(TasksKey, raw)
		s := newTestStore(t, mem)

		_, err := s.LoadTasks()
		if !errors.Is(err, ErrInvalidTasks) {
			t.Fatalf("%s: expected ErrInvalidTasks, got %v", name, err)
		}
	}
}

func TestSchemaErrorNamesInstanceLocation(t *testing.T) {
	mem := kv.NewMemory()
	_ = mem.Set(TasksKey, `[{"id":"t1","text":"ok","completed":false,"createdAt":"2026-02-19T12:00:00Z"},{"id":"t2","text":"","completed":false,"createdAt":"2026-02-19T12:00:00Z"}]`)
	s := newTestStore(t, mem)

	_, err := s.LoadTasks()
	if err == nil || !strings.Contains(err.Error(), "/1") {
		t.Fatalf("expected error to point at the second item, got %v", err)
	}
}

func TestThemeDefaultsToDarkWhenMissing(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())

	dark, err := s.LoadTheme()
	if !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected kv.ErrNotFound, got %v", err)
	}
	if !dark {
		t.Fatalf("expected dark default")
	}
}

func TestThemeRoundTripAsLiteralText(t *testing.T) {
	mem := kv.NewMemory()
	s := newTestStore(t, mem)

	if err := s.SaveTheme(false); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if raw, _ := mem.Get(ThemeKey); raw != "false" {
		t.Fatalf("expected literal false, got %q", raw)
	}
	dark, err := s.LoadTheme()
	if err != nil || dark {
		t.Fatalf("expected light theme, got dark=%v err=%v", dark, err)
	}

	if err := s.SaveTheme(true); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if raw, _ := mem.Get(ThemeKey); raw != "true" {
		t.Fatalf("expected literal true, got %q", raw)
	}
}

func TestThemeRejectsUnparseableValue(t *testing.T) {
	mem := kv.NewMemory()
	_ = mem.Set(ThemeKey, "dark")
	s := newTestStore(t, mem)

	dark, err := s.LoadTheme()
	if !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if !dark {
		t.Fatalf("expected dark fallback")
	}
}

func TestRecordsSurviveFileBackendReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	file, err := kv.OpenFile(path, nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	s := newTestStore(t, file)
	if err := s.SaveTasks(sampleTasks()); err != nil {
		t.Fatalf("save tasks failed: %v", err)
	}
	if err := s.SaveTheme(false); err != nil {
		t.Fatalf("save theme failed: %v", err)
	}

	reopened, err := kv.OpenFile(path, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	s2 := newTestStore(t, reopened)
	tasks, err := s2.LoadTasks()
	if err != nil {
		t.Fatalf("load tasks failed: %v", err)
	}
	if !reflect.DeepEqual(sampleTasks(), tasks) {
		t.Fatalf("unexpected tasks after reopen: %+v", tasks)
	}
	if dark, err := s2.LoadTheme(); err != nil || dark {
		t.Fatalf("expected light theme after reopen, got dark=%v err=%v", dark, err)
	}
}
