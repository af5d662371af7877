package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billie-coop/propedit/internal/logger"
)

// ErrWarnings is returned by set --strict when the saved file has values
// that do not fit their control.
var ErrWarnings = errors.New("saved with warnings")

type assignment struct {
	key, raw string
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", arg)
		}
		out = append(out, assignment{key: k, raw: v})
	}
	return out, nil
}

func newSetCommand(rt *runtime) *cobra.Command {
	var (
		dir    string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "set --path DIR key=value...",
		Short: "Change properties without opening the editor",
		Long: `set applies each key=value the same way the editor does and saves the
file once. Keys must already be present in the file (or be one of the
defaults when the file does not exist yet).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args)
			if err != nil {
				return err
			}

			a, err := rt.newApp(dir, logger.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}

			for _, as := range assignments {
				if err := a.Session.ApplyEdit(as.key, as.raw); err != nil {
					return err
				}
			}

			report, err := a.Session.RequestSave(cmd.Context())
			if err != nil {
				return err
			}

			for _, w := range a.Session.DescribeWarnings(report.Warnings) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s (value %q)\n", w.Key, w.Reason, w.Value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", a.Store.Path())

			if strict && len(report.Warnings) > 0 {
				return fmt.Errorf("%w: %d value(s)", ErrWarnings, len(report.Warnings))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "path", "p", "", "Minecraft server directory")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the saved file has warnings")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
