package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tasklist/view"
)

func newThemeCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Print or change the theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(stderr, func(s *session) error {
				if len(args) == 1 {
					switch strings.ToLower(args[0]) {
					case "dark":
						s.svc.SetTheme(true)
					case "light":
						s.svc.SetTheme(false)
					case "toggle":
						s.svc.ToggleTheme()
					default:
						return fmt.Errorf("unknown theme %q (want dark, light or toggle)", args[0])
					}
				}
				fmt.Fprintln(stdout, view.ThemeName(s.svc.Dark()))
				return nil
			})
		},
	}
}
