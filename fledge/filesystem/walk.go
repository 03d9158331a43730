package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultIgnoreDirs are engine caches and VCS metadata that never hold
// source assets.
var DefaultIgnoreDirs = []string{
	".git", ".svn", ".hg",
	"Library", "Temp", "Logs", "obj", "Build", "Builds",
	"node_modules",
}

// WalkOptions configures directory traversal.
type WalkOptions struct {
	IgnoreDirs     []string // Directory names to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // File name patterns to skip (e.g. "*.meta")
	IncludeHidden  bool     // Visit entries starting with "."
}

// Walk traverses root in lexical order and calls visit for every file and
// directory that is not ignored. Returning filepath.SkipDir from visit on a
// directory skips it. The root itself is always visited.
func Walk(root string, opts WalkOptions, visit func(path string, d fs.DirEntry) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root {
			name := d.Name()
			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() && slices.Contains(ignoreDirs, name) {
				return filepath.SkipDir
			}
			if !d.IsDir() && matchesAny(opts.IgnorePatterns, name) {
				return nil
			}
		}
		return visit(path, d)
	})
}

// FindFiles returns the regular files under root whose names end with
// suffix, in lexical path order. A missing root yields no files; any other
// error, including an entry vanishing during the walk, is returned.
func FindFiles(root, suffix string, opts WalkOptions) ([]string, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var files []string
	err := Walk(root, opts, func(path string, d fs.DirEntry) error {
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
