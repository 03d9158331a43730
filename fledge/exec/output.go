package exec

import (
	"bytes"
	"io"
)

// PrefixWriter writes each complete line to the underlying writer with a
// prefix. A trailing partial line is held until the next newline or Flush.
type PrefixWriter struct {
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that prefixes each line
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{prefix: prefix, writer: writer}
}

// Write adds prefix to each line
func (p *PrefixWriter) Write(data []byte) (int, error) {
	p.buffer = append(p.buffer, data...)
	for {
		i := bytes.IndexByte(p.buffer, '\n')
		if i < 0 {
			break
		}
		if err := p.emit(p.buffer[:i]); err != nil {
			return 0, err
		}
		p.buffer = p.buffer[i+1:]
	}
	return len(data), nil
}

// Flush writes a pending partial line.
func (p *PrefixWriter) Flush() error {
	if len(p.buffer) == 0 {
		return nil
	}
	err := p.emit(p.buffer)
	p.buffer = p.buffer[:0]
	return err
}

func (p *PrefixWriter) emit(line []byte) error {
	out := make([]byte, 0, len(p.prefix)+len(line)+1)
	out = append(out, p.prefix...)
	out = append(out, line...)
	out = append(out, '\n')
	_, err := p.writer.Write(out)
	return err
}
