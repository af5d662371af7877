// Command propcheck reports server.properties values that do not fit their
// control, without changing anything. It exits 1 when any file has
// warnings and 2 when a file can not be read.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/billie-coop/propedit/internal/properties"
	"github.com/billie-coop/propedit/internal/reconcile"
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/workset"
)

const (
	exitOK       = 0
	exitWarnings = 1
	exitError    = 2
)

var errWarnings = errors.New("warnings found")

func main() {
	os.Exit(run(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(fsys afero.Fs, args []string, stdout, stderr io.Writer) int {
	var quiet bool
	cmd := &cobra.Command{
		Use:           "propcheck FILE|DIR...",
		Short:         "Check server.properties files against the editor's controls",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := schema.Default()
			found := 0
			for _, arg := range args {
				n, err := check(fsys, reg, arg, cmd.OutOrStdout(), quiet)
				if err != nil {
					return err
				}
				found += n
			}
			if found > 0 {
				return fmt.Errorf("%w: %d", errWarnings, found)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only set the exit code")
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errWarnings):
		return exitWarnings
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

// check prints the warnings of one file and returns how many there were.
// A directory argument means its server.properties.
func check(fsys afero.Fs, reg *schema.Registry, path string, w io.Writer, quiet bool) (int, error) {
	if info, err := fsys.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, properties.FileName)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := properties.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	res := reconcile.Reconcile(reg, workset.NewSnapshot(entries))
	if quiet {
		return len(res.Warnings), nil
	}
	for _, warn := range res.Warnings {
		attempted := warn.Attempted.String()
		if reg.IsSensitive(warn.Key) && attempted != "" {
			attempted = "********"
		}
		fmt.Fprintf(w, "%s: %s: %s (value %q)\n", path, warn.Key, warn.Reason, attempted)
	}
	if len(res.Warnings) == 0 {
		fmt.Fprintf(w, "%s: ok\n", path)
	}
	return len(res.Warnings), nil
}
