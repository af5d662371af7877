package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billie-coop/propedit/internal/config"
)

func newConfigCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change editor preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print one preference",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := rt.prefs.Value(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change and save one preference",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return rt.prefs.Set(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print all preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, k := range config.Keys() {
					v, _ := rt.prefs.Value(k)
					fmt.Fprintf(tw, "%s\t%s\n", k, v)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the preferences file location",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), rt.prefs.Path())
			},
		},
	)
	return cmd
}
