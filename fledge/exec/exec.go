package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrNotFound is returned when the command is not on PATH.
var ErrNotFound = errors.New("command not found")

// Executor runs external commands.
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	timeout time.Duration

	// For mocking in tests
	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// Options configures command execution
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Env     []string      // Added to the current environment
	Dir     string        // Working directory
	Timeout time.Duration // Zero means no limit
}

// NewExecutor creates an executor. Nil options stream to stdout and stderr.
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}
	e := &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		timeout:     opts.Timeout,
		commandFunc: exec.CommandContext,
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// Run executes a command, streaming its output.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	return e.run(ctx, e.stdout, e.stderr, name, args...)
}

func (e *Executor) run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := e.commandFunc(ctx, name, args...)
	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		cmd.Env = append(cmd.Environ(), e.env...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	switch {
	case err == nil:
		return nil
	case isCommandNotFound(err):
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	case ctx.Err() != nil:
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	default:
		return fmt.Errorf("%s failed: %w", name, err)
	}
}

// RunWithSpinner runs a command behind a spinner on stderr. Output is
// buffered and written to stderr only if the command fails.
func (e *Executor) RunWithSpinner(ctx context.Context, message string, name string, args ...string) error {
	var captured bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- e.run(ctx, &captured, &captured, name, args...)
	}()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(e.stderr), tea.WithInput(nil))
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = p.Run()
	}()

	err := <-done
	p.Send(doneMsg{err: err})
	<-finished

	if err != nil && captured.Len() > 0 {
		w := NewPrefixWriter(e.stderr, "  │ ")
		_, _ = w.Write(captured.Bytes())
		_ = w.Flush()
	}
	return err
}

// spinnerModel shows the message, a spinner and the elapsed time until a
// doneMsg arrives.
type spinnerModel struct {
	spin    spinner.Model
	message string
	started time.Time
	result  *doneMsg
}

type doneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205"))),
	)
	return &spinnerModel{spin: s, message: message, started: time.Now()}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.result != nil {
		return m, nil
	}
	switch msg := msg.(type) {
	case doneMsg:
		m.result = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	elapsed := time.Since(m.started).Round(100 * time.Millisecond)
	switch {
	case m.result == nil:
		return fmt.Sprintf("%s %s (%s)", m.spin.View(), m.message, elapsed)
	case m.result.err != nil:
		return fmt.Sprintf("✗ %s (%s)\n", m.message, elapsed)
	default:
		return fmt.Sprintf("✓ %s (%s)\n", m.message, elapsed)
	}
}

// isCommandNotFound reports whether err means the executable is missing.
func isCommandNotFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 127 {
		return true
	}
	return strings.Contains(err.Error(), "executable file not found")
}
