package app

import (
	"fmt"

	"tasklist/model"
)

// Press performs the action behind the affordance with the given stable
// identifier. input is the submitted text for the add affordances and is
// ignored otherwise. Pressing the text field itself is a no-op.
func (s *Service) Press(id, input string) error {
	switch id {
	case model.AffordanceInput:
		return nil
	case model.AffordanceAdd:
		s.AddTask(input)
		return nil
	case model.AffordanceFilterAll:
		return s.SetFilter(model.FilterAll)
	case model.AffordanceFilterActive:
		return s.SetFilter(model.FilterActive)
	case model.AffordanceFilterDone:
		return s.SetFilter(model.FilterCompleted)
	case model.AffordanceClearCompleted:
		s.ClearCompleted()
		return nil
	case model.AffordanceThemeToggle:
		s.ToggleTheme()
		return nil
	}

	action, taskID, ok := model.TaskAffordance(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAffordance, id)
	}
	switch action {
	case "toggle":
		s.ToggleTask(taskID)
	case "delete":
		s.DeleteTask(taskID)
	}
	return nil
}
