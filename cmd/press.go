package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tasklist/view"
)

func newPressCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	var listIDs bool
	pressCmd := &cobra.Command{
		Use:   "press <affordance-id> [input...]",
		Short: "Activate an on-screen control by its stable id",
		Long: `Activate an on-screen control by its stable id, exactly as a key press
in the interactive screen would. The input is only used by add-button.

Examples:
  tasklist press add-button Buy milk
  tasklist press todo-checkbox-<id>
  tasklist press theme-toggle
  tasklist press --ids`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !listIDs && len(args) == 0 {
				return errors.New("requires an affordance id")
			}
			return opts.run(stderr, func(s *session) error {
				if listIDs {
					for _, a := range view.Affordances(view.Derive(s.svc.State())) {
						fmt.Fprintf(stdout, "%-28s %s\n", a.ID, a.Label)
					}
					return nil
				}
				return s.svc.Press(args[0], strings.Join(args[1:], " "))
			})
		},
	}
	pressCmd.Flags().BoolVar(&listIDs, "ids", false, "list the ids currently on screen")
	return pressCmd
}
