package baseline

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/snapshot"
)

// formatVersion is written to every baseline file.
const formatVersion = 1

// document is the on-disk layout of a baseline file.
type document struct {
	Version int               `yaml:"version"`
	Domains map[string]record `yaml:"domains"`
}

// record is one domain slot. Shape is stored so an empty list can be told
// apart from an empty tree.
type record struct {
	Shape       string           `yaml:"shape"`
	Fingerprint string           `yaml:"fingerprint,omitempty"`
	Flat        []string         `yaml:"flat,omitempty"`
	Tree        []snapshot.Group `yaml:"tree,omitempty"`
}

// FileStore keeps every domain's baseline in one YAML file.
// The file is read on first use and written only by Flush.
type FileStore struct {
	path string

	mu     sync.Mutex
	doc    *document
	dirty  bool
	loaded bool
}

// Open returns a store backed by path. The file does not need to exist.
func Open(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(domain string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return Entry{}, false, err
	}

	rec, ok := s.doc.Domains[domain]
	if !ok {
		return Entry{}, false, nil
	}

	snap, err := rec.decode()
	if err != nil {
		return Entry{}, false, errors.Persistence(err, "baseline %s: domain %s", s.path, domain)
	}
	return Entry{Snapshot: snap, Fingerprint: rec.Fingerprint}, true, nil
}

func (s *FileStore) Save(domain string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}

	rec, err := encode(entry.Snapshot)
	if err != nil {
		return errors.Persistence(err, "baseline %s: domain %s", s.path, domain)
	}
	rec.Fingerprint = entry.Fingerprint
	s.doc.Domains[domain] = rec
	return nil
}

func (s *FileStore) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// Dirty reports whether there are staged changes not yet flushed.
func (s *FileStore) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Flush writes the file if the store is dirty.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty || s.doc == nil {
		return nil
	}

	data, err := yaml.Marshal(s.doc)
	if err != nil {
		return errors.Persistence(err, "encode baseline %s", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Persistence(err, "create baseline directory")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Persistence(err, "write baseline %s", s.path)
	}

	s.dirty = false
	return nil
}

// ensureLoaded reads the backing file once. A missing file is an empty store.
func (s *FileStore) ensureLoaded() error {
	if s.loaded {
		return nil
	}

	doc := &document{Version: formatVersion, Domains: make(map[string]record)}

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return errors.Persistence(err, "read baseline %s", s.path)
	default:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return errors.Persistence(err, "parse baseline %s", s.path)
		}
		if doc.Version > formatVersion {
			return errors.Persistence(errors.Newf("unsupported version %d", doc.Version), "baseline %s", s.path)
		}
		if doc.Domains == nil {
			doc.Domains = make(map[string]record)
		}
	}

	s.doc = doc
	s.loaded = true
	return nil
}

func encode(snap snapshot.Snapshot) (record, error) {
	switch v := snap.(type) {
	case snapshot.Flat:
		return record{Shape: snapshot.ShapeFlat.String(), Flat: v.Clone()}, nil
	case snapshot.Tree:
		return record{Shape: snapshot.ShapeTree.String(), Tree: v.Clone()}, nil
	default:
		return record{}, errors.Newf("unsupported snapshot %T", snap)
	}
}

func (r record) decode() (snapshot.Snapshot, error) {
	shape, err := snapshot.ParseShape(r.Shape)
	if err != nil {
		return nil, err
	}
	switch shape {
	case snapshot.ShapeFlat:
		if r.Tree != nil {
			return nil, errors.New("flat record carries tree data")
		}
		return snapshot.Flat(r.Flat).Clone(), nil
	default:
		if r.Flat != nil {
			return nil, errors.New("tree record carries flat data")
		}
		return snapshot.Tree(r.Tree).Clone(), nil
	}
}
