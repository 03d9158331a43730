package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetWriter redirects all output and returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func printStyled(style lipgloss.Style, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, style.Render(msg))
}

// Success prints a completed action in green.
func Success(msg string) { printStyled(successStyle, "✓ "+msg) }

// Warn prints a non-fatal condition in yellow, e.g. a skipped regeneration.
func Warn(msg string) { printStyled(warnStyle, "! "+msg) }

// Error prints a failure in red.
func Error(msg string) { printStyled(errorStyle, "✗ "+msg) }

// Info prints a status line in cyan.
func Info(msg string) { printStyled(infoStyle, msg) }

// Step prints an indented detail line in gray.
func Step(msg string) { printStyled(stepStyle, "   "+msg) }

// Verbose prints a debug line only when verbose mode is on.
func Verbose(msg string) {
	mu.Lock()
	on := verboseMode
	mu.Unlock()
	if on {
		printStyled(stepStyle, "· "+msg)
	}
}
