package codewriter

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError reports a template that cannot be filled from its arguments.
type FormatError struct {
	Template string
	Pos      int    // byte offset of the offending placeholder
	Slot     int    // referenced slot, -1 when the placeholder is malformed
	Args     int    // number of arguments supplied
	Reason   string // short description
}

func (e *FormatError) Error() string {
	if e.Slot >= 0 {
		return fmt.Sprintf("format %q: slot {%d} at offset %d but only %d argument(s)", e.Template, e.Slot, e.Pos, e.Args)
	}
	return fmt.Sprintf("format %q: %s at offset %d", e.Template, e.Reason, e.Pos)
}

// Format replaces {N} with the N-th argument. "{{" and "}}" produce literal
// braces. A slot past the end of args, a non-numeric placeholder or a lone
// brace is a *FormatError.
func Format(template string, args ...any) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", &FormatError{Template: template, Pos: i, Slot: -1, Args: len(args), Reason: "unterminated placeholder"}
			}
			slot, err := strconv.Atoi(template[i+1 : i+end])
			if err != nil || slot < 0 {
				return "", &FormatError{Template: template, Pos: i, Slot: -1, Args: len(args), Reason: "malformed placeholder"}
			}
			if slot >= len(args) {
				return "", &FormatError{Template: template, Pos: i, Slot: slot, Args: len(args)}
			}
			fmt.Fprint(&b, args[slot])
			i += end
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", &FormatError{Template: template, Pos: i, Slot: -1, Args: len(args), Reason: "unmatched closing brace"}
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
