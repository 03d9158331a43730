package commands

import (
	"context"
	"os"
	"strings"

	"github.com/simonhull/constgen/fledge/exec"
	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/driver"
	"github.com/simonhull/constgen/internal/errors"
)

// postGenerate runs the post_generate command once after a run that wrote
// or deleted at least one file. The command sees the output directory in
// CONSTGEN_OUTPUT and the touched files, joined by the OS path list
// separator, in CONSTGEN_CHANGED.
func (s *session) postGenerate(ctx context.Context, r driver.Report) error {
	if len(s.cfg.PostGenerate) == 0 || !r.Changed() {
		return nil
	}

	var changed []string
	for _, e := range r.Entries {
		switch e.Action {
		case driver.ActionGenerated, driver.ActionRegenerated, driver.ActionDeleted:
			changed = append(changed, e.Path)
		}
	}

	stdout := exec.NewPrefixWriter(s.out, "   │ ")
	stderr := exec.NewPrefixWriter(s.errOut, "   │ ")
	defer stdout.Flush()
	defer stderr.Flush()

	// The spinner draws on the raw stream and replays output itself.
	opts := &exec.Options{
		Stdout:  stdout,
		Stderr:  stderr,
		Dir:     s.cfg.Dir,
		Timeout: s.cfg.PostGenerateTimeout,
		Env: []string{
			"CONSTGEN_OUTPUT=" + s.cfg.Output,
			"CONSTGEN_CHANGED=" + strings.Join(changed, string(os.PathListSeparator)),
		},
	}
	if s.spinner {
		opts.Stderr = s.errOut
	}
	e := exec.NewExecutor(opts)

	name, args := s.cfg.PostGenerate[0], s.cfg.PostGenerate[1:]
	line := strings.Join(s.cfg.PostGenerate, " ")
	s.log.Debugw("post_generate", "command", line, "changed", len(changed))

	var err error
	if s.spinner {
		err = e.RunWithSpinner(ctx, "Running "+line, name, args...)
	} else {
		output.Step("running " + line)
		err = e.Run(ctx, name, args...)
	}
	if err != nil {
		err = errors.Wrap(err, "post_generate")
		if errors.Is(err, exec.ErrNotFound) {
			err = errors.WithHintf(err, "install %s or change post_generate in the config", name)
		}
		return err
	}
	output.Verbose("post_generate finished")
	return nil
}
