package view

import (
	"tasklist/model"
)

// Affordance describes one interactive element on screen.
type Affordance struct {
	// ID is stable across sessions and independent of Label.
	ID    string
	Label string
	// Key is the TUI binding that activates it, when there is one.
	Key string
}

// Affordances lists the elements visible in f, top to bottom.
func Affordances(f Frame) []Affordance {
	out := []Affordance{
		{ID: model.AffordanceThemeToggle, Label: themeToggleLabel(f.Dark), Key: "t"},
		{ID: model.AffordanceInput, Label: "What needs to be done?", Key: "i"},
		{ID: model.AffordanceAdd, Label: "Add", Key: "enter"},
		{ID: model.AffordanceFilterAll, Label: "All", Key: "1"},
		{ID: model.AffordanceFilterActive, Label: "Active", Key: "2"},
		{ID: model.AffordanceFilterDone, Label: "Completed", Key: "3"},
	}
	for _, t := range f.Tasks {
		out = append(out,
			Affordance{ID: model.ToggleAffordance(t.ID), Label: t.Text, Key: "space"},
			Affordance{ID: model.DeleteAffordance(t.ID), Label: "Delete " + t.Text, Key: "d"},
		)
	}
	if f.ShowFooter && f.ShowClearCompleted {
		out = append(out, Affordance{ID: model.AffordanceClearCompleted, Label: "Clear completed", Key: "c"})
	}
	return out
}

func themeToggleLabel(dark bool) string {
	if dark {
		return "Switch to light mode"
	}
	return "Switch to dark mode"
}
