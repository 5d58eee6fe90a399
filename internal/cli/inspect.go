package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func inspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <id>",
		Short: "Show a term's detail panel in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No layout needed; zero ticks
			h, closeStore, err := a.loadHeadless(cmd.Context(), 0)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := h.ctrl.Click(args[0]); err != nil {
				return err
			}
			d := h.ctrl.State().Detail
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "\n  %s\n", Brand.Sprint(d.Name))
			fmt.Fprintf(w, "  %s\n\n", Subtle.Sprint(d.IDLabel))
			field(w, "definition", d.Definition)
			if d.Placeholder != "" {
				field(w, "connected", Subtle.Sprint(d.Placeholder))
			} else {
				field(w, "connected", Info.Sprint(strings.Join(d.Connected, ", ")))
			}
			fmt.Fprintln(w)
			return nil
		},
	}
	addStoreFlags(cmd, a)
	return cmd
}
