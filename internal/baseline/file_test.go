package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/snapshot"
)

func sampleTree() snapshot.Tree {
	return snapshot.Tree{
		{Name: "Player", Children: []snapshot.Group{
			{Name: "Base", Children: []snapshot.Group{
				{Name: "Idle"},
				{Name: "Run", Attributes: []snapshot.Attribute{{Key: "tag", Value: "Locomotion"}}},
			}},
		}},
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "baseline.yml"))

	entry, ok, err := store.Load("layers")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entry.Snapshot)
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".constgen", "baseline.yml")

	store := Open(path)
	require.NoError(t, store.Save("layers", Entry{Snapshot: snapshot.Flat{"Default", "UI", "Water"}, Fingerprint: "9f3c"}))
	require.NoError(t, store.Save("animStates", Entry{Snapshot: sampleTree()}))
	store.MarkDirty()
	require.NoError(t, store.Flush())
	assert.False(t, store.Dirty())

	reopened := Open(path)

	flat, ok, err := reopened.Load("layers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snapshot.Flat{"Default", "UI", "Water"}, flat.Snapshot)
	assert.Equal(t, "9f3c", flat.Fingerprint)

	tree, ok, err := reopened.Load("animStates")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, snapshot.HasChanged(sampleTree(), tree.Snapshot))
	assert.Empty(t, tree.Fingerprint)
}

func TestFileStore_FlushOnlyWhenDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.yml")
	store := Open(path)

	require.NoError(t, store.Save("tags", Entry{Snapshot: snapshot.Flat{"Player"}}))
	require.NoError(t, store.Flush())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "flush without MarkDirty must not write")
}

func TestFileStore_EmptyListKeepsShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.yml")
	store := Open(path)
	require.NoError(t, store.Save("tags", Entry{Snapshot: snapshot.Flat{}}))
	require.NoError(t, store.Save("animParams", Entry{Snapshot: snapshot.Tree{}}))
	store.MarkDirty()
	require.NoError(t, store.Flush())

	reopened := Open(path)
	tags, ok, err := reopened.Load("tags")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snapshot.ShapeFlat, tags.Snapshot.Shape())

	params, ok, err := reopened.Load("animParams")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snapshot.ShapeTree, params.Snapshot.Shape())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.yml")
	require.NoError(t, os.WriteFile(path, []byte("domains: [this is: not a map"), 0644))

	_, _, err := Open(path).Load("layers")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPersistence))
}

func TestFileStore_UnknownShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.yml")
	content := "version: 1\ndomains:\n  layers:\n    shape: graph\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, _, err := Open(path).Load("layers")
	assert.True(t, errors.Is(err, errors.ErrPersistence))
}

func TestFileStore_SaveCopies(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "baseline.yml"))
	snap := snapshot.Flat{"A", "B"}
	require.NoError(t, store.Save("tags", Entry{Snapshot: snap}))

	snap[0] = "mutated"

	got, _, err := store.Load("tags")
	require.NoError(t, err)
	assert.Equal(t, snapshot.Flat{"A", "B"}, got.Snapshot)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Load("tags")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save("tags", Entry{Snapshot: snapshot.Flat{"Player"}, Fingerprint: "ab12"}))
	store.MarkDirty()
	assert.True(t, store.Dirty())

	got, ok, err := store.Load("tags")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, snapshot.Flat{"Player"}, got.Snapshot)
	assert.Equal(t, "ab12", got.Fingerprint)
}
