// Package source reads the project data that constants are generated from.
//
// Everything is read fresh on each call so a reload always sees the current
// files. Every failure is marked errors.ErrRetrieval.
package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/constgen/internal/errors"
)

// MaxLayers is the number of physics layer slots an engine project has.
const MaxLayers = 32

// Scene is one entry of the build scene list.
type Scene struct {
	Path    string `yaml:"path" toml:"path"`
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
}

// IsEnabled reports whether the scene is part of the build. Scenes are
// enabled unless explicitly disabled.
func (s Scene) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Manifest is the project settings file (project.yml or project.toml).
//
// Layers and NavAreas are slot lists: the position of an entry is its engine
// index and an empty string marks an unused slot.
type Manifest struct {
	Layers        []string `yaml:"layers" toml:"layers"`
	Tags          []string `yaml:"tags" toml:"tags"`
	SortingLayers []string `yaml:"sortingLayers" toml:"sortingLayers"`
	Scenes        []Scene  `yaml:"scenes" toml:"scenes"`
	NavAreas      []string `yaml:"navAreas" toml:"navAreas"`
}

// LoadManifest reads and validates the manifest at path. Files ending in
// .toml are decoded as TOML, everything else as YAML. Unknown keys are
// rejected so a misspelt section is not silently empty.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Retrieval(err, "read manifest %s", path)
	}

	var m Manifest
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, errors.Retrieval(err, "parse manifest %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, retrievalf("manifest %s: unknown key %q", path, undecoded[0].String())
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Retrieval(err, "parse manifest %s", path)
		}
	}

	if err := m.validate(); err != nil {
		return nil, errors.Retrieval(err, "manifest %s", path)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	m.Layers = trimTrailingEmpty(m.Layers)
	if len(m.Layers) > MaxLayers {
		return errors.Newf("%d layer slots, at most %d are allowed", len(m.Layers), MaxLayers)
	}
	for i, s := range m.Scenes {
		if strings.TrimSpace(s.Path) == "" {
			return errors.Newf("scene %d has no path", i)
		}
	}
	return nil
}

func trimTrailingEmpty(slots []string) []string {
	n := len(slots)
	for n > 0 && slots[n-1] == "" {
		n--
	}
	return slots[:n]
}

func retrievalf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errors.ErrRetrieval)
}
