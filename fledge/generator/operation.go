package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Write Generated/_TAGS.cs (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp replaces a file with content.
//
// Validation behavior:
//   - Creates parent directories if they don't exist
//   - Checks for an existing file unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution writes the whole file in one call. There is no temp file and
// rename, so an interrupted write can leave a truncated file.
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	dir := filepath.Dir(op.Path)

	// Create parent directory (side effect, but idempotent)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", op.Path, len(op.Content))
}

// DeleteFileOp removes a generated file.
//
// Validation fails when the file does not exist unless force=true, in which
// case executing it is a no-op. Directories are never removed.
type DeleteFileOp struct {
	Path string
}

func (op *DeleteFileOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.Path)
	switch {
	case os.IsNotExist(err):
		if force {
			return nil
		}
		return fmt.Errorf("file does not exist: %s", op.Path)
	case err != nil:
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	case info.IsDir():
		return fmt.Errorf("refusing to delete directory: %s", op.Path)
	}
	return nil
}

func (op *DeleteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(op.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (op *DeleteFileOp) Description() string {
	return fmt.Sprintf("Delete %s", op.Path)
}
