// Package watch turns file system events on the project sources into
// debounced reload callbacks.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/simonhull/constgen/fledge/filesystem"
	"github.com/simonhull/constgen/internal/errors"
)

// Watcher collects changes to single files and to source trees and reports
// them in batches once the debounce period passes without a new event.
type Watcher struct {
	fsw      *fsnotify.Watcher
	log      *zap.SugaredLogger
	debounce time.Duration

	files   map[string]bool   // watched through their parent directory
	trees   map[string]string // root -> file suffix
	waiting map[string]string // missing root -> watched ancestor
}

// New creates a watcher. A zero debounce reports every event on its own.
func New(debounce time.Duration, log *zap.SugaredLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Watcher{
		fsw:      fsw,
		log:      log.Named("watch"),
		debounce: debounce,
		files:    make(map[string]bool),
		trees:    make(map[string]string),
		waiting:  make(map[string]string),
	}, nil
}

// AddFile watches a single file. Its directory is watched instead of the
// file so editors that save by rename are still seen.
func (w *Watcher) AddFile(path string) error {
	path = filepath.Clean(path)
	if err := w.fsw.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(path))
	}
	w.files[path] = true
	return nil
}

// AddTree watches every directory under root for files ending in suffix.
// Directories created later are picked up as they appear. A missing root
// is waited for through its nearest existing ancestor.
func (w *Watcher) AddTree(root, suffix string) error {
	root = filepath.Clean(root)
	w.trees[root] = suffix
	if isDir(root) {
		return w.addDirs(root)
	}
	w.log.Debugw("tree does not exist yet", "root", root)
	w.waiting[root] = ""
	_, err := w.await(root)
	return err
}

// await moves the watch for a missing root down to its deepest existing
// ancestor. Once the root exists its directories are added and the root
// stops waiting; the return value reports that.
func (w *Watcher) await(root string) (bool, error) {
	for {
		if isDir(root) {
			delete(w.waiting, root)
			if err := w.addDirs(root); err != nil {
				return true, err
			}
			w.log.Debugw("tree appeared", "root", root)
			return true, nil
		}
		dir := nearestDir(root)
		if dir == w.waiting[root] {
			return false, nil
		}
		if err := w.fsw.Add(dir); err != nil {
			return false, errors.Wrapf(err, "watch %s", dir)
		}
		w.waiting[root] = dir
	}
}

// nearestDir returns the deepest existing directory on the way to path.
func nearestDir(path string) string {
	dir := filepath.Dir(path)
	for !isDir(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dir
}

func (w *Watcher) addDirs(root string) error {
	return filesystem.Walk(root, filesystem.WalkOptions{}, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, "watch %s", path)
		}
		w.log.Debugw("watching", "dir", path)
		return nil
	})
}

// Run delivers batches of changed paths to onChange until ctx is done.
// onChange runs on the caller's goroutine, one batch at a time.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("change", "file", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(paths)
		}
	}
}

// relevant filters events down to watched files and tree sources. A
// directory created inside a tree is watched from then on and counts as a
// change, since it may have been moved in with sources already inside.
// Anything removed or renamed inside a tree counts too, since a directory
// may have taken sources with it.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	if event.Has(fsnotify.Create) && w.appeared(name) {
		return true
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.rewait(name)
	}
	root, suffix, ok := w.treeOf(name)
	if !ok {
		return false
	}
	switch {
	case event.Has(fsnotify.Create) && isDir(name):
		if err := w.addDirs(name); err != nil {
			w.log.Warnw("cannot watch new directory", "root", root, "dir", name, "error", err)
		}
		return true
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.forget(name)
		if name == root {
			if _, err := w.await(root); err != nil {
				w.log.Warnw("cannot wait for tree", "root", root, "error", err)
			}
		}
		return true
	}
	return strings.HasSuffix(name, suffix)
}

// appeared reports whether a created path completes a missing tree root.
// A directory on the way to the root moves the wait one level down.
func (w *Watcher) appeared(name string) bool {
	found := false
	for root := range w.waiting {
		if name != root && !strings.HasPrefix(root, name+string(filepath.Separator)) {
			continue
		}
		ok, err := w.await(root)
		if err != nil {
			w.log.Warnw("cannot watch new tree", "root", root, "error", err)
		}
		found = found || ok
	}
	return found
}

// rewait moves the wait for a missing root back up when the directory it
// was watched through goes away.
func (w *Watcher) rewait(name string) {
	for root, dir := range w.waiting {
		if dir != name && !strings.HasPrefix(dir, name+string(filepath.Separator)) {
			continue
		}
		w.waiting[root] = ""
		if _, err := w.await(root); err != nil {
			w.log.Warnw("cannot wait for tree", "root", root, "error", err)
		}
	}
}

// forget drops the watches at and below a path that was removed or moved
// away. Paths that were never watched are ignored.
func (w *Watcher) forget(path string) {
	prefix := path + string(filepath.Separator)
	for _, dir := range w.fsw.WatchList() {
		if dir == path || strings.HasPrefix(dir, prefix) {
			_ = w.fsw.Remove(dir)
		}
	}
}

func (w *Watcher) treeOf(path string) (root, suffix string, ok bool) {
	for r, s := range w.trees {
		if path == r || strings.HasPrefix(path, r+string(filepath.Separator)) {
			return r, s, true
		}
	}
	return "", "", false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
