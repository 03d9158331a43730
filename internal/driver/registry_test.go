package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/constgen/internal/baseline"
	"github.com/simonhull/constgen/internal/emit"
	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/snapshot"
)

func flatDescriptor(key string, retrieve func() (snapshot.Snapshot, error)) Descriptor {
	return Descriptor{
		Key: key, FileName: "_" + key, Generator: key + "Gen", Shape: snapshot.ShapeFlat,
		Retrieve: retrieve, Layout: flatLayout,
	}
}

func ok(names ...string) func() (snapshot.Snapshot, error) {
	return func() (snapshot.Snapshot, error) { return snapshot.Flat(names), nil }
}

func newTestRegistry(t *testing.T, descs ...Descriptor) (*Registry, *memFS) {
	t.Helper()
	fs := newMemFS()
	reg, err := NewRegistry(descs, Deps{
		Store:     baseline.NewMemoryStore(),
		FS:        fs,
		Dialect:   emit.NewCSharp("", nil, ""),
		OutputDir: "out",
	}, bothOn)
	require.NoError(t, err)
	return reg, fs
}

func TestRegistry_DriverIsCreatedOnce(t *testing.T) {
	reg, _ := newTestRegistry(t, flatDescriptor("tags", ok("Player")))

	first, err := reg.Driver("tags")
	require.NoError(t, err)
	second, err := reg.Driver("tags")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRegistry_UnknownDomain(t *testing.T) {
	reg, _ := newTestRegistry(t, flatDescriptor("tags", ok("Player")))

	_, err := reg.Driver("shaders")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "tags")
}

func TestRegistry_DuplicateKey(t *testing.T) {
	_, err := NewRegistry([]Descriptor{
		flatDescriptor("tags", ok()),
		flatDescriptor("tags", ok()),
	}, Deps{}, bothOn)
	assert.ErrorContains(t, err, "registered twice")
}

func TestRegistry_FailureIsLocalToDomain(t *testing.T) {
	broken := func() (snapshot.Snapshot, error) { return nil, errors.New("no editor") }
	reg, fs := newTestRegistry(t,
		flatDescriptor("layers", ok("Default")),
		flatDescriptor("tags", broken),
		flatDescriptor("scenes", ok("Menu")),
	)

	report := reg.GenerateAll()

	require.Len(t, report.Entries, 3)
	assert.Equal(t, []string{"layers", "tags", "scenes"}, reg.Keys())
	assert.NoError(t, report.Entries[0].Err)
	assert.True(t, errors.Is(report.Entries[1].Err, errors.ErrRetrieval))
	assert.NoError(t, report.Entries[2].Err)
	assert.Len(t, report.Failed(), 1)
	assert.Equal(t, 2, fs.writes)
	assert.True(t, report.Changed())
	assert.True(t, errors.Is(report.Err(), errors.ErrRetrieval))
}

func TestRegistry_ForceGenerateAllWarnsOnAbsent(t *testing.T) {
	reg, _ := newTestRegistry(t, flatDescriptor("layers", ok("Default")), flatDescriptor("tags", ok("Player")))

	report := reg.ForceGenerateAll()
	assert.NoError(t, report.Err())
	assert.Len(t, report.Warnings(), 2)
	assert.False(t, report.Changed())
}

func TestRegistry_RunSubset(t *testing.T) {
	reg, fs := newTestRegistry(t, flatDescriptor("layers", ok("Default")), flatDescriptor("tags", ok("Player")))

	report := reg.Run([]string{"tags", "nope"}, OpGenerate)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "tags", report.Entries[0].Domain)
	assert.NoError(t, report.Entries[0].Err)
	assert.Error(t, report.Entries[1].Err)
	assert.Equal(t, 1, fs.writes)
	assert.ErrorContains(t, report.Err(), "unknown domain")
}

func TestRegistry_LoadAllThenQuiet(t *testing.T) {
	reg, fs := newTestRegistry(t, flatDescriptor("layers", ok("Default", "UI")))

	require.NoError(t, reg.LoadAll().Err())
	assert.Equal(t, 1, fs.writes)

	report := reg.LoadAll()
	require.NoError(t, report.Err())
	assert.Equal(t, ActionUpToDate, report.Entries[0].Action)
	assert.Equal(t, 1, fs.writes)
}
