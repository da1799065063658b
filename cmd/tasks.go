package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tasklist/model"
	"tasklist/view"
)

var (
	errBlankTask    = errors.New("task text is blank")
	errTaskNotFound = errors.New("task not found")
)

func newAddCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task and print its id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(stderr, func(s *session) error {
				task, ok := s.svc.AddTask(strings.Join(args, " "))
				if !ok {
					return errBlankTask
				}
				fmt.Fprintln(stdout, task.ID)
				return nil
			})
		},
	}
}

// listOutput is the --json form of the list command.
type listOutput struct {
	Filter    model.Filter `json:"filter"`
	Tasks     []model.Task `json:"tasks"`
	Total     int          `json:"total"`
	Active    int          `json:"active"`
	Completed int          `json:"completed"`
	Theme     string       `json:"theme"`
}

func newListCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	var (
		filter     string
		jsonOutput bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the tasks that pass a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return err
			}
			return opts.run(stderr, func(s *session) error {
				if err := s.svc.SetFilter(f); err != nil {
					return err
				}
				frame := view.Derive(s.svc.State())
				if jsonOutput {
					return writeListJSON(stdout, frame)
				}
				writeList(stdout, frame)
				return nil
			})
		},
	}
	listCmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter: all, active or completed")
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")
	return listCmd
}

func writeList(w io.Writer, f view.Frame) {
	if len(f.Tasks) == 0 {
		fmt.Fprintln(w, f.EmptyMessage)
	}
	for _, t := range f.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %s  %s\n", box, t.ID, t.Text)
	}
	if f.ShowFooter {
		fmt.Fprintln(w, view.ItemsLeft(f.ActiveCount))
	}
}

func writeListJSON(w io.Writer, f view.Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listOutput{
		Filter:    f.Filter,
		Tasks:     f.Tasks,
		Total:     f.Total,
		Active:    f.ActiveCount,
		Completed: f.CompletedCount,
		Theme:     view.ThemeName(f.Dark),
	})
}

func newToggleCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(stderr, func(s *session) error {
				task, ok := s.svc.ToggleTask(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", errTaskNotFound, args[0])
				}
				state := "active"
				if task.Completed {
					state = "completed"
				}
				fmt.Fprintf(stdout, "%s %s\n", task.ID, state)
				return nil
			})
		},
	}
}

func newDeleteCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(stderr, func(s *session) error {
				if !s.svc.DeleteTask(args[0]) {
					return fmt.Errorf("%w: %s", errTaskNotFound, args[0])
				}
				fmt.Fprintln(stdout, "deleted", args[0])
				return nil
			})
		},
	}
}

func newClearCompletedCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(stderr, func(s *session) error {
				n := s.svc.ClearCompleted()
				fmt.Fprintf(stdout, "cleared %d\n", n)
				return nil
			})
		},
	}
}
