// Package codewriter provides an indentation-tracked text buffer for
// generated source files.
//
// Blocks are opened and closed as matched pairs. Block is the preferred form:
// it closes its scope from a defer, so the output stays balanced even when the
// body returns an error or panics.
//
//	w := codewriter.New()
//	err := w.Block("public static class _TAGS", func() error {
//	    return w.WriteFormatted("public const string {0} = @\"{1}\";", "Player", "Player")
//	})
package codewriter

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	// Tab is the text written once per indent level.
	Tab = "    "

	// Newline terminates every line.
	Newline = "\n"
)

// Writer is a text buffer with an indent level and a stack of open scopes.
// The zero value is not usable; call New.
type Writer struct {
	buf    bytes.Buffer
	indent int
	open   []*Scope
}

// Scope is the handle returned by OpenScope. It must be closed exactly once.
type Scope struct {
	w      *Writer
	header string
	depth  int
	closed bool
}

// New creates an empty writer at indent level 0.
func New() *Writer {
	return &Writer{}
}

// WriteLine appends the current indentation, text and a line terminator.
// An empty text produces an empty line with no trailing whitespace.
func (w *Writer) WriteLine(text string) {
	if text != "" {
		w.buf.WriteString(strings.Repeat(Tab, w.indent))
		w.buf.WriteString(text)
	}
	w.buf.WriteString(Newline)
}

// WriteBlank appends an empty line.
func (w *Writer) WriteBlank() {
	w.buf.WriteString(Newline)
}

// WriteFormatted substitutes positional {N} placeholders in template and
// writes the result as one line. Nothing is written if formatting fails.
func (w *Writer) WriteFormatted(template string, args ...any) error {
	line, err := Format(template, args...)
	if err != nil {
		return err
	}
	w.WriteLine(line)
	return nil
}

// WriteImports writes one using directive per import followed by a blank line.
func (w *Writer) WriteImports(imports ...string) {
	for _, imp := range imports {
		w.WriteLine("using " + imp + ";")
	}
	w.WriteBlank()
}

// OpenScope writes header (when non-empty) and an opening brace, then
// increments the indent level.
func (w *Writer) OpenScope(header string) *Scope {
	if header != "" {
		w.WriteLine(header)
	}
	w.WriteLine("{")
	w.indent++

	s := &Scope{w: w, header: header, depth: len(w.open)}
	w.open = append(w.open, s)
	return s
}

// CloseScope decrements the indent level and writes the closing brace.
//
// s must be the innermost open scope of this writer. A nil handle, a second
// close, a handle from another writer or an out-of-order close panics.
func (w *Writer) CloseScope(s *Scope) {
	switch {
	case s == nil:
		panic("codewriter: close of nil scope")
	case s.w != w:
		panic("codewriter: scope belongs to another writer")
	case s.closed:
		panic(fmt.Sprintf("codewriter: scope %q closed twice", s.header))
	case len(w.open) == 0 || w.open[len(w.open)-1] != s:
		panic(fmt.Sprintf("codewriter: scope %q closed out of order", s.header))
	}

	s.closed = true
	w.open = w.open[:len(w.open)-1]
	w.indent--
	w.WriteLine("}")
}

// Close closes the scope on its writer.
func (s *Scope) Close() {
	if s == nil {
		panic("codewriter: close of nil scope")
	}
	s.w.CloseScope(s)
}

// Block opens a scope, runs fn and closes the scope on every exit path.
// Scopes opened inside fn and left open are closed first, innermost out.
func (w *Writer) Block(header string, fn func() error) error {
	s := w.OpenScope(header)
	defer w.unwind(s)
	return fn()
}

// unwind closes every scope above and including s.
func (w *Writer) unwind(s *Scope) {
	if s.closed {
		return
	}
	for len(w.open) > s.depth+1 {
		w.CloseScope(w.open[len(w.open)-1])
	}
	w.CloseScope(s)
}

// Indent returns the current indent level.
func (w *Writer) Indent() int {
	return w.indent
}

// Depth returns the number of scopes that are still open.
func (w *Writer) Depth() int {
	return len(w.open)
}

// Bytes returns the buffered text.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// String returns the buffered text.
func (w *Writer) String() string {
	return w.buf.String()
}
