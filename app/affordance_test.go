package app

import (
	"errors"
	"testing"

	"tasklist/kv"
	"tasklist/model"
)

func TestPressRoutesAffordances(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())

	if err := svc.Press(model.AffordanceAdd, "  Buy milk "); err != nil {
		t.Fatalf("press add failed: %v", err)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("expected one task from add button, got %+v", tasks)
	}
	id := tasks[0].ID

	if err := svc.Press(model.AffordanceAdd, "   "); err != nil {
		t.Fatalf("blank add should not error: %v", err)
	}
	if len(svc.Tasks()) != 1 {
		t.Fatalf("expected blank add to be a no-op")
	}

	if err := svc.Press(model.ToggleAffordance(id), ""); err != nil {
		t.Fatalf("press toggle failed: %v", err)
	}
	if task, _ := svc.Task(id); !task.Completed {
		t.Fatalf("expected task completed after toggle")
	}

	for _, tc := range []struct {
		id   string
		want model.Filter
	}{
		{model.AffordanceFilterActive, model.FilterActive},
		{model.AffordanceFilterDone, model.FilterCompleted},
		{model.AffordanceFilterAll, model.FilterAll},
	} {
		if err := svc.Press(tc.id, ""); err != nil {
			t.Fatalf("press %s failed: %v", tc.id, err)
		}
		if svc.Filter() != tc.want {
			t.Fatalf("press %s: want filter %q, got %q", tc.id, tc.want, svc.Filter())
		}
	}

	if err := svc.Press(model.AffordanceThemeToggle, ""); err != nil {
		t.Fatalf("press theme toggle failed: %v", err)
	}
	if svc.Dark() {
		t.Fatalf("expected light theme after toggle")
	}

	if err := svc.Press(model.AffordanceClearCompleted, ""); err != nil {
		t.Fatalf("press clear completed failed: %v", err)
	}
	if len(svc.Tasks()) != 0 {
		t.Fatalf("expected completed task cleared")
	}
}

func TestPressDelete(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	task := mustAddTask(t, svc, "A")

	if err := svc.Press(model.DeleteAffordance(task.ID), ""); err != nil {
		t.Fatalf("press delete failed: %v", err)
	}
	if len(svc.Tasks()) != 0 {
		t.Fatalf("expected task deleted")
	}
}

func TestPressInputIsNoOp(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())

	if err := svc.Press(model.AffordanceInput, "text"); err != nil {
		t.Fatalf("press input failed: %v", err)
	}
	if len(svc.Tasks()) != 0 {
		t.Fatalf("expected focusing the input not to add a task")
	}
}

func TestPressUnknownAffordance(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())

	for _, id := range []string{"", "Add", "todo-checkbox-", "launch-rockets"} {
		if err := svc.Press(id, ""); !errors.Is(err, ErrUnknownAffordance) {
			t.Fatalf("press %q: expected ErrUnknownAffordance, got %v", id, err)
		}
	}
}
