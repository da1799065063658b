package model

import "strings"

// Stable identifiers for every interactive element. Automation addresses
// elements by these names, never by their labels.
const (
	AffordanceInput          = "todo-input"
	AffordanceAdd            = "add-button"
	AffordanceFilterAll      = "filter-all"
	AffordanceFilterActive   = "filter-active"
	AffordanceFilterDone     = "filter-completed"
	AffordanceClearCompleted = "clear-completed"
	AffordanceThemeToggle    = "theme-toggle"

	toggleAffordancePrefix = "todo-checkbox-"
	deleteAffordancePrefix = "delete-todo-"
)

// ToggleAffordance returns the identifier of the completion toggle for a task.
func ToggleAffordance(taskID string) string {
	return toggleAffordancePrefix + taskID
}

// DeleteAffordance returns the identifier of the delete action for a task.
func DeleteAffordance(taskID string) string {
	return deleteAffordancePrefix + taskID
}

// FilterAffordance returns the selector identifier for f.
func FilterAffordance(f Filter) string {
	switch f {
	case FilterActive:
		return AffordanceFilterActive
	case FilterCompleted:
		return AffordanceFilterDone
	default:
		return AffordanceFilterAll
	}
}

// TaskAffordance splits a per-task identifier into its action and task id.
// ok is false when id does not name a per-task affordance.
func TaskAffordance(id string) (action, taskID string, ok bool) {
	switch {
	case strings.HasPrefix(id, toggleAffordancePrefix):
		return "toggle", strings.TrimPrefix(id, toggleAffordancePrefix), len(id) > len(toggleAffordancePrefix)
	case strings.HasPrefix(id, deleteAffordancePrefix):
		return "delete", strings.TrimPrefix(id, deleteAffordancePrefix), len(id) > len(deleteAffordancePrefix)
	}
	return "", "", false
}
