package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Confirm writes a yes/no question to w and reads the answer from r.
// Returns true for y/Y/yes/YES. Enter or a read error returns defaultYes.
func Confirm(r io.Reader, w io.Writer, message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(w, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}
