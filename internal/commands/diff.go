package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simonhull/constgen/fledge/generator"
	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/errors"
)

// DiffCmd creates and returns the 'diff' command
func DiffCmd() *cobra.Command {
	var plain, exitCode bool

	cmd := &cobra.Command{
		Use:   "diff [domain...]",
		Short: "Show what generating would change",
		Long: `Render each domain from the current sources and diff it against the
file on disk. Nothing is written and baselines are left as they are.
With no domain given every configured domain is compared.

Examples:
  constgen diff
  constgen diff scenes --plain
  constgen diff --exit-code    # exit 1 when any file is stale`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			keys := args
			if len(keys) == 0 {
				keys = s.registry.Keys()
			}
			w := cmd.OutOrStdout()
			opts := &generator.DiffOptions{Plain: plain || !isTerminal(w)}

			var failed, stale int
			for _, key := range keys {
				d, err := s.registry.Driver(key)
				if err != nil {
					PrintError(err)
					failed++
					continue
				}
				content, _, err := d.Render()
				if err != nil {
					output.Error(fmt.Sprintf("%s: %s (%s)", key, err, errors.Kind(err)))
					printHints(err)
					failed++
					continue
				}
				current, err := os.ReadFile(d.Path())
				if err != nil && !os.IsNotExist(err) {
					return errors.Wrapf(err, "read %s", d.Path())
				}

				text, stats := generator.GenerateDiff(d.Path(), current, content, opts)
				if text == "" {
					output.Verbose(fmt.Sprintf("%s up to date", key))
					continue
				}
				stale++
				fmt.Fprint(w, text)
				output.Info(fmt.Sprintf("%s: +%d -%d", key, stats.Added, stats.Removed))
			}

			switch {
			case failed > 0:
				return errors.Newf("%d of %d domains could not be rendered", failed, len(keys))
			case stale == 0:
				output.Info("Everything up to date")
			case exitCode:
				return errors.Newf("%d of %d files are out of date", stale, len(keys))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Fail when any file would change")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
