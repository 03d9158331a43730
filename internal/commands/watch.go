package commands

import (
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/driver"
	"github.com/simonhull/constgen/internal/source"
	"github.com/simonhull/constgen/internal/watch"
)

// WatchCmd creates and returns the 'watch' command
func WatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the reload cycle whenever the sources change",
		Long: `Run the reload cycle once, then again every time the project manifest
or an animator controller changes. Bursts of changes are batched using
watch_debounce. Editing the banner template regenerates every file.

Changes to the config file itself need a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			s.ctx = ctx

			w, err := watch.New(s.cfg.WatchDebounce, s.log)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.AddFile(s.cfg.Project); err != nil {
				return err
			}
			if s.cfg.Controllers != "" {
				if err := w.AddTree(s.cfg.Controllers, source.ControllerSuffix); err != nil {
					return err
				}
			}
			if s.cfg.BannerTemplate != "" {
				if err := w.AddFile(s.cfg.BannerTemplate); err != nil {
					return err
				}
			}

			s.cycle(s.registry.LoadAll())
			output.Info(fmt.Sprintf("Watching %s (Ctrl+C to stop)", s.cfg.Project))

			return w.Run(ctx, func(paths []string) {
				for _, p := range paths {
					output.Verbose(fmt.Sprintf("changed: %s", p))
				}
				if s.cfg.BannerTemplate != "" && slices.Contains(paths, s.cfg.BannerTemplate) {
					s.dialect.Reload()
					s.cycle(s.registry.GenerateAll())
					return
				}
				s.cycle(s.registry.LoadAll())
			})
		},
	}
}

// cycle reports one run in watch mode. Failures are printed and the watch
// keeps going.
func (s *session) cycle(r driver.Report) {
	printReport(r, s.cfg.Output)
	if err := s.postGenerate(s.ctx, r); err != nil {
		PrintError(err)
	}
	if err := s.flush(); err != nil {
		PrintError(err)
	}
}
