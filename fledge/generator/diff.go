package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions configures how diffs are generated and displayed.
// The zero value is usable.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines shown around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces each tab expands to.
	// Default: 4
	TabWidth int

	// Plain disables colour styling, for logs and tests.
	Plain bool
}

// DiffStats counts the changed lines of a diff.
type DiffStats struct {
	Added   int
	Removed int
}

// Changed reports whether the diff had any added or removed line.
func (s DiffStats) Changed() bool { return s.Added+s.Removed > 0 }

// maxDiffLines guards the O(ND) search against huge inputs.
const maxDiffLines = 10000

type lineOp int

const (
	opUnchanged lineOp = iota
	opAdded
	opRemoved
)

type diffLine struct {
	oldNum  int // 0 if added
	newNum  int // 0 if removed
	content string
	op      lineOp
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// GenerateDiff returns a unified diff from old to newer and its line counts.
// Identical inputs produce an empty string. A missing file is diffed as
// empty content.
func GenerateDiff(path string, old, newer []byte, opts *DiffOptions) (string, DiffStats) {
	o := DiffOptions{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		o.Plain = opts.Plain
		if opts.ContextLines > 0 {
			o.ContextLines = opts.ContextLines
		}
		if opts.TabWidth > 0 {
			o.TabWidth = opts.TabWidth
		}
	}

	if bytes.Equal(old, newer) {
		return "", DiffStats{}
	}
	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n", DiffStats{}
	}

	oldLines := splitLines(string(old))
	newLines := splitLines(string(newer))
	if len(oldLines) > maxDiffLines || len(newLines) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(oldLines), len(newLines)), DiffStats{}
	}

	script := editScript(oldLines, newLines)
	var stats DiffStats
	for _, l := range script {
		switch l.op {
		case opAdded:
			stats.Added++
		case opRemoved:
			stats.Removed++
		}
	}
	hunks := buildHunks(script, o.ContextLines)
	if len(hunks) == 0 {
		return "", stats
	}

	render := func(s lipgloss.Style, text string) string {
		if o.Plain {
			return text
		}
		return s.Render(text)
	}

	width := terminalWidth()
	var buf strings.Builder
	buf.WriteString(render(headerStyle, "--- a/"+path) + "\n")
	buf.WriteString(render(headerStyle, "+++ b/"+path) + "\n")
	for _, h := range hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
		buf.WriteString(render(hunkStyle, header) + "\n")
		for _, l := range h.lines {
			content := truncateLine(expandTabs(l.content, o.TabWidth), width-2)
			switch l.op {
			case opAdded:
				buf.WriteString(render(addedStyle, "+"+content))
			case opRemoved:
				buf.WriteString(render(removedStyle, "-"+content))
			default:
				buf.WriteString(" " + content)
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String(), stats
}

// editScript computes the shortest edit script between a and b with the
// greedy algorithm from Myers, "An O(ND) Difference Algorithm and Its
// Variations" (1986).
func editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	maxD := n + m
	offset := maxD + 1
	v := make([]int, 2*maxD+3)
	var trace [][]int

search:
	for d := 0; d <= maxD; d++ {
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	// Backtrack from (n, m), collecting lines in reverse.
	var rev []diffLine
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		vd := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && vd[offset+k-1] < vd[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			rev = append(rev, diffLine{oldNum: x + 1, newNum: y + 1, content: a[x], op: opUnchanged})
		}
		if d == 0 {
			break
		}
		if x == prevX {
			y--
			rev = append(rev, diffLine{newNum: y + 1, content: b[y], op: opAdded})
		} else {
			x--
			rev = append(rev, diffLine{oldNum: x + 1, content: a[x], op: opRemoved})
		}
	}

	out := make([]diffLine, len(rev))
	for i, l := range rev {
		out[len(rev)-1-i] = l
	}
	return out
}

// buildHunks groups changes with up to ctx lines of context on each side.
// Changes separated by more than 2*ctx unchanged lines land in separate hunks.
func buildHunks(lines []diffLine, ctx int) []hunk {
	var hunks []hunk
	start, end := -1, -1
	flush := func() {
		if start < 0 {
			return
		}
		lo := max(start-ctx, 0)
		hi := min(end+ctx, len(lines)-1)
		h := hunk{lines: lines[lo : hi+1]}
		finalizeHunk(&h)
		hunks = append(hunks, h)
		start, end = -1, -1
	}

	for i, l := range lines {
		if l.op == opUnchanged {
			continue
		}
		if start >= 0 && i-end-1 > 2*ctx {
			flush()
		}
		if start < 0 {
			start = i
		}
		end = i
	}
	flush()
	return hunks
}

func finalizeHunk(h *hunk) {
	for _, l := range h.lines {
		if l.oldNum > 0 && h.oldStart == 0 {
			h.oldStart = l.oldNum
		}
		if l.newNum > 0 && h.newStart == 0 {
			h.newStart = l.newNum
		}
		if l.op != opAdded {
			h.oldCount++
		}
		if l.op != opRemoved {
			h.newCount++
		}
	}
}

// isBinary reports whether the first 8KiB contain a NUL byte.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

// splitLines splits on "\n", dropping the empty element after a final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

func truncateLine(s string, maxWidth int) string {
	if maxWidth < 3 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	return string([]rune(s)[:maxWidth-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
