package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startWatcher(t *testing.T, w *Watcher) <-chan []string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(paths []string) { batches <- paths })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return batches
}

func nextBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return nil
	}
}

func TestWatcher_File(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "project.yml")
	require.NoError(t, os.WriteFile(manifest, []byte("layers: []\n"), 0644))

	w, err := New(20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddFile(manifest))
	batches := startWatcher(t, w)

	// A sibling file in the same directory is not reported.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(manifest, []byte("layers: [Default]\n"), 0644))

	assert.Equal(t, []string{manifest}, nextBatch(t, batches))
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "project.yml")
	require.NoError(t, os.WriteFile(manifest, nil, 0644))

	w, err := New(200*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.AddFile(manifest))
	batches := startWatcher(t, w)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(manifest, []byte{byte('a' + i)}, 0644))
	}

	assert.Equal(t, []string{manifest}, nextBatch(t, batches))
	select {
	case b := <-batches:
		t.Fatalf("unexpected second batch %v", b)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_Tree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Animators")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Enemies"), 0755))

	w, err := New(20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddTree(root, ".controller.yml"))
	batches := startWatcher(t, w)

	ctrl := filepath.Join(root, "Enemies", "Slime.controller.yml")
	require.NoError(t, os.WriteFile(filepath.Join(root, "Enemies", "Slime.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(ctrl, []byte("name: Slime\n"), 0644))

	assert.Equal(t, []string{ctrl}, nextBatch(t, batches))
}

func TestWatcher_TreeNewDirectory(t *testing.T) {
	root := t.TempDir()

	w, err := New(20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddTree(root, ".controller.yml"))
	batches := startWatcher(t, w)

	sub := filepath.Join(root, "Boss")
	require.NoError(t, os.Mkdir(sub, 0755))
	assert.Equal(t, []string{sub}, nextBatch(t, batches))

	ctrl := filepath.Join(sub, "Dragon.controller.yml")
	require.NoError(t, os.WriteFile(ctrl, []byte("name: Dragon\n"), 0644))
	assert.Equal(t, []string{ctrl}, nextBatch(t, batches))
}

func TestWatcher_TreeDirectoryMovedAway(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "Animators")
	props := filepath.Join(root, "Props")
	require.NoError(t, os.MkdirAll(props, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(props, "Crate.controller.yml"), []byte("name: Crate\n"), 0644))

	w, err := New(20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddTree(root, ".controller.yml"))
	batches := startWatcher(t, w)

	attic := filepath.Join(base, "Attic")
	require.NoError(t, os.Rename(props, attic))
	assert.Contains(t, nextBatch(t, batches), props)

	// The moved directory is no longer part of the tree.
	require.NoError(t, os.WriteFile(filepath.Join(attic, "Crate.controller.yml"), []byte("name: Box\n"), 0644))
	select {
	case b := <-batches:
		t.Fatalf("unexpected batch %v", b)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_TreeCreatedLater(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Assets", "Animators")

	w, err := New(20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddTree(root, ".controller.yml"))
	batches := startWatcher(t, w)

	require.NoError(t, os.MkdirAll(root, 0755))
	assert.NotEmpty(t, nextBatch(t, batches))

	ctrl := filepath.Join(root, "Hero.controller.yml")
	require.NoError(t, os.WriteFile(ctrl, []byte("name: Hero\n"), 0644))
	waitForPath(t, batches, ctrl)
}

func TestWatcher_TreeRemovedAndRecreated(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Animators")
	require.NoError(t, os.Mkdir(root, 0755))

	w, err := New(20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddTree(root, ".controller.yml"))
	batches := startWatcher(t, w)

	require.NoError(t, os.Remove(root))
	waitForPath(t, batches, root)

	require.NoError(t, os.Mkdir(root, 0755))
	waitForPath(t, batches, root)

	ctrl := filepath.Join(root, "Hero.controller.yml")
	require.NoError(t, os.WriteFile(ctrl, []byte("name: Hero\n"), 0644))
	waitForPath(t, batches, ctrl)
}

// waitForPath reads batches until one names path.
func waitForPath(t *testing.T, batches <-chan []string, path string) {
	t.Helper()
	for {
		if slices.Contains(nextBatch(t, batches), path) {
			return
		}
	}
}
