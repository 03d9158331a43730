package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/baseline"
	"github.com/simonhull/constgen/internal/config"
	"github.com/simonhull/constgen/internal/domains"
	"github.com/simonhull/constgen/internal/driver"
	"github.com/simonhull/constgen/internal/emit"
	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/logging"
	"github.com/simonhull/constgen/internal/source"
)

// session is everything one command invocation needs to run cycles.
type session struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	store    baseline.Store
	dialect  *emit.CSharp
	project  source.Project
	registry *driver.Registry

	ctx     context.Context
	out     io.Writer
	errOut  io.Writer
	spinner bool // post_generate runs behind a spinner
}

// openSession loads the config named by --config and wires the registry.
// The config file may be absent only when --config was left at its default.
func openSession(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	noBaseline, _ := cmd.Flags().GetBool("no-baseline")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(path, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	env, err := logging.ParseEnv()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(env, verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	var store baseline.Store
	if noBaseline {
		store = baseline.NewMemoryStore()
	} else {
		store = baseline.Open(cfg.Baseline)
	}

	s := &session{
		cfg:     cfg,
		log:     log,
		store:   store,
		dialect: emit.NewCSharp(cfg.Namespace, cfg.Imports, cfg.BannerTemplate),
		project: source.Project{ManifestPath: cfg.Project, ControllersDir: cfg.Controllers},
		ctx:     cmd.Context(),
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		spinner: !verbose && isTerminal(cmd.ErrOrStderr()),
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	descs, err := domains.Select(domains.Descriptors(s.project), cfg.Domains)
	if err != nil {
		return nil, err
	}
	s.registry, err = driver.NewRegistry(descs, driver.Deps{
		Store:     store,
		FS:        driver.DiskFS{Out: verboseWriter{}},
		Dialect:   s.dialect,
		Logger:    log,
		OutputDir: cfg.Output,
	}, driver.Options{
		RegenerateOnMissing: cfg.RegenerateOnMissing,
		UpdateOnReload:      cfg.UpdateOnReload,
	})
	if err != nil {
		return nil, err
	}

	log.Debugw("session ready",
		"config", path,
		"output", cfg.Output,
		"domains", s.registry.Keys(),
		"baseline", !noBaseline)
	return s, nil
}

// keys returns args, or every registered domain when all is set. Naming
// no domain without --all is an error so nothing runs by accident.
func (s *session) keys(args []string, all bool) ([]string, error) {
	switch {
	case all && len(args) > 0:
		return nil, errors.New("pass domain names or --all, not both")
	case all:
		return s.registry.Keys(), nil
	case len(args) == 0:
		return nil, errors.WithHintf(errors.New("no domain given"),
			"pass --all or one of: %s", strings.Join(s.registry.Keys(), ", "))
	default:
		return args, nil
	}
}

// flush writes staged baselines. Cycles only stage them.
func (s *session) flush() error {
	file, ok := s.store.(*baseline.FileStore)
	if !ok {
		return nil
	}
	if err := file.Flush(); err != nil {
		return err
	}
	s.log.Debugw("baseline flushed", "path", file.Path())
	return nil
}

// close flushes the baseline and syncs the logger.
func (s *session) close() error {
	err := s.flush()
	_ = s.log.Sync()
	return err
}

// finish reports a run, runs the post_generate hook, flushes the baseline
// and returns the first error.
func (s *session) finish(r driver.Report) error {
	printReport(r, s.cfg.Output)
	hookErr := s.postGenerate(s.ctx, r)
	if err := s.close(); err != nil {
		return err
	}
	if err := r.Err(); err != nil {
		return err
	}
	return hookErr
}

// verboseWriter forwards file operation reports to verbose output, one
// call per line.
type verboseWriter struct{}

func (verboseWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			output.Verbose(line)
		}
	}
	return len(p), nil
}

var _ io.Writer = verboseWriter{}
