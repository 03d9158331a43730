package driver

import (
	"context"
	"io"
	"os"

	"github.com/simonhull/constgen/fledge/generator"
)

// OutputFS is the file system the generated files live on.
type OutputFS interface {
	Exists(path string) (bool, error)
	Delete(path string) error
	WriteAllText(path, content string) error
}

// DiskFS writes through fledge operations and reports each executed
// operation to Out. A write replaces the whole file in place; an
// interrupted write can leave it truncated until the next generation.
type DiskFS struct {
	Out io.Writer // nil discards reports
}

func (d DiskFS) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

func (d DiskFS) Delete(path string) error {
	return d.execute(&generator.DeleteFileOp{Path: path})
}

func (d DiskFS) WriteAllText(path, content string) error {
	return d.execute(&generator.WriteFileOp{Path: path, Content: []byte(content), Mode: 0644})
}

func (d DiskFS) execute(op generator.Operation) error {
	out := d.Out
	if out == nil {
		out = io.Discard
	}
	return generator.Execute(context.Background(), []generator.Operation{op}, generator.ExecuteOptions{
		Force:  true,
		Writer: out,
	})
}
