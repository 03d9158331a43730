package generator_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/constgen/fledge/generator"
)

func TestExecute_DryRun(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Generated", "_TAGS.cs")

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("class _TAGS {}"), Mode: 0644},
	}

	var buf bytes.Buffer
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: true, Writer: &buf}); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("dry run created file")
	}
	if !strings.Contains(buf.String(), "[DRY RUN]") {
		t.Errorf("output missing [DRY RUN] marker, got: %s", buf.String())
	}
}

func TestExecute_WritesAndReports(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Generated", "_TAGS.cs")

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("hello"), Mode: 0644},
	}

	var buf bytes.Buffer
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
	if !strings.Contains(buf.String(), "Write "+path+" (5 bytes)") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestExecute_ValidationFailureRunsNothing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	existing := filepath.Join(dir, "_LAYERS.cs")
	fresh := filepath.Join(dir, "_TAGS.cs")
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: fresh, Content: []byte("new"), Mode: 0644},
		&generator.WriteFileOp{Path: existing, Content: []byte("new"), Mode: 0644},
	}

	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := os.Stat(fresh); !os.IsNotExist(err) {
		t.Error("first operation ran despite validation failure")
	}
}

func TestExecute_ForceOverwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "_LAYERS.cs")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("new"), Mode: 0644},
	}
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true, Writer: &bytes.Buffer{}}); err != nil {
		t.Fatalf("forced execute failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}
