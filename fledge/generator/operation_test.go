package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/constgen/fledge/generator"
)

func TestWriteFileOp_Validate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("creates parent directories", func(t *testing.T) {
		op := &generator.WriteFileOp{Path: filepath.Join(dir, "a", "b", "_X.cs"), Content: []byte{}, Mode: 0644}
		require.NoError(t, op.Validate(ctx, false))
		assert.DirExists(t, filepath.Join(dir, "a", "b"))
	})

	t.Run("rejects nil content", func(t *testing.T) {
		op := &generator.WriteFileOp{Path: filepath.Join(dir, "_Y.cs"), Mode: 0644}
		assert.ErrorContains(t, op.Validate(ctx, true), "content is nil")
	})

	t.Run("existing file needs force", func(t *testing.T) {
		path := filepath.Join(dir, "_Z.cs")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		op := &generator.WriteFileOp{Path: path, Content: []byte("y"), Mode: 0644}
		assert.ErrorContains(t, op.Validate(ctx, false), "already exists")
		assert.NoError(t, op.Validate(ctx, true))
	})
}

func TestWriteFileOp_ExecuteHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "_X.cs")
	op := &generator.WriteFileOp{Path: path, Content: []byte("x"), Mode: 0644}
	assert.ErrorIs(t, op.Execute(ctx), context.Canceled)
	assert.NoFileExists(t, path)
}

func TestDeleteFileOp(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "_SCENES.cs")

	op := &generator.DeleteFileOp{Path: path}
	assert.Equal(t, "Delete "+path, op.Description())

	assert.ErrorContains(t, op.Validate(ctx, false), "does not exist")
	require.NoError(t, op.Validate(ctx, true))
	require.NoError(t, op.Execute(ctx), "deleting a missing file is a no-op")

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, op.Validate(ctx, false))
	require.NoError(t, op.Execute(ctx))
	assert.NoFileExists(t, path)

	dirOp := &generator.DeleteFileOp{Path: dir}
	assert.ErrorContains(t, dirOp.Validate(ctx, true), "refusing to delete directory")
}
