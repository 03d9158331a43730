package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/constgen/fledge/filesystem"
	"github.com/simonhull/constgen/internal/errors"
)

// ControllerSuffix is the file name suffix of animation controller files.
const ControllerSuffix = ".controller.yml"

// Controller is an animation controller: its parameters and its layers,
// each layer with its states.
type Controller struct {
	Name       string   `yaml:"name"`
	Parameters []string `yaml:"parameters"`
	Layers     []Layer  `yaml:"layers"`
}

type Layer struct {
	Name   string  `yaml:"name"`
	States []State `yaml:"states"`
}

type State struct {
	Name string `yaml:"name"`
	Tag  string `yaml:"tag,omitempty"`
}

// LoadControllers reads every controller file under dir in lexical path
// order. A missing directory means the project has no controllers.
func LoadControllers(dir string) ([]Controller, error) {
	files, err := filesystem.FindFiles(dir, ControllerSuffix, filesystem.WalkOptions{})
	if err != nil {
		return nil, errors.Retrieval(err, "scan controllers in %s", dir)
	}

	controllers := make([]Controller, 0, len(files))
	for _, path := range files {
		c, err := LoadController(path)
		if err != nil {
			return nil, err
		}
		controllers = append(controllers, c)
	}
	return controllers, nil
}

// LoadController reads one controller file. The name defaults to the file
// name without ControllerSuffix.
func LoadController(path string) (Controller, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Controller{}, errors.Retrieval(err, "read controller %s", path)
	}

	var c Controller
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Controller{}, errors.Retrieval(err, "parse controller %s", path)
	}

	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), ControllerSuffix)
	}
	for i, l := range c.Layers {
		if l.Name == "" {
			return Controller{}, retrievalf("controller %s: layer %d has no name", path, i)
		}
		for j, s := range l.States {
			if s.Name == "" {
				return Controller{}, retrievalf("controller %s: layer %q state %d has no name", path, l.Name, j)
			}
		}
	}
	return c, nil
}
