package source

import (
	"github.com/simonhull/constgen/internal/snapshot"
)

// Project retrieves domain snapshots from a manifest file and a controller
// directory.
type Project struct {
	ManifestPath   string
	ControllersDir string
}

// Layers returns the layer slots; empty strings are unused slots.
func (p Project) Layers() (snapshot.Flat, error) {
	m, err := LoadManifest(p.ManifestPath)
	if err != nil {
		return nil, err
	}
	return snapshot.Flat(m.Layers).Clone(), nil
}

func (p Project) Tags() (snapshot.Flat, error) {
	m, err := LoadManifest(p.ManifestPath)
	if err != nil {
		return nil, err
	}
	return snapshot.Flat(m.Tags).Clone(), nil
}

func (p Project) SortingLayers() (snapshot.Flat, error) {
	m, err := LoadManifest(p.ManifestPath)
	if err != nil {
		return nil, err
	}
	return snapshot.Flat(m.SortingLayers).Clone(), nil
}

// Scenes returns the paths of enabled build scenes in build order, so the
// position of a path is its build index.
func (p Project) Scenes() (snapshot.Flat, error) {
	m, err := LoadManifest(p.ManifestPath)
	if err != nil {
		return nil, err
	}
	scenes := snapshot.Flat{}
	for _, s := range m.Scenes {
		if s.IsEnabled() {
			scenes = append(scenes, s.Path)
		}
	}
	return scenes, nil
}

// NavAreas returns the navigation area slots; empty strings are unused slots.
func (p Project) NavAreas() (snapshot.Flat, error) {
	m, err := LoadManifest(p.ManifestPath)
	if err != nil {
		return nil, err
	}
	return snapshot.Flat(m.NavAreas).Clone(), nil
}

// AnimParams returns controller → parameter groups. Controllers without
// parameters are left out.
func (p Project) AnimParams() (snapshot.Tree, error) {
	controllers, err := LoadControllers(p.ControllersDir)
	if err != nil {
		return nil, err
	}
	tree := snapshot.Tree{}
	for _, c := range controllers {
		if len(c.Parameters) == 0 {
			continue
		}
		g := snapshot.Group{Name: c.Name}
		for _, param := range c.Parameters {
			g.Children = append(g.Children, snapshot.Group{Name: param})
		}
		tree = append(tree, g)
	}
	return tree, nil
}

// AnimLayers returns controller → layer groups. Controllers without layers
// are left out.
func (p Project) AnimLayers() (snapshot.Tree, error) {
	controllers, err := LoadControllers(p.ControllersDir)
	if err != nil {
		return nil, err
	}
	tree := snapshot.Tree{}
	for _, c := range controllers {
		if len(c.Layers) == 0 {
			continue
		}
		g := snapshot.Group{Name: c.Name}
		for _, l := range c.Layers {
			g.Children = append(g.Children, snapshot.Group{Name: l.Name})
		}
		tree = append(tree, g)
	}
	return tree, nil
}

// AnimStates returns controller → layer → state groups. Each state carries
// its tag as the "tag" attribute, empty when untagged. Controllers without
// layers and layers without states are left out.
func (p Project) AnimStates() (snapshot.Tree, error) {
	controllers, err := LoadControllers(p.ControllersDir)
	if err != nil {
		return nil, err
	}
	tree := snapshot.Tree{}
	for _, c := range controllers {
		if len(c.Layers) == 0 {
			continue
		}
		g := snapshot.Group{Name: c.Name}
		for _, l := range c.Layers {
			if len(l.States) == 0 {
				continue
			}
			lg := snapshot.Group{Name: l.Name}
			for _, s := range l.States {
				lg.Children = append(lg.Children, snapshot.Group{
					Name:       s.Name,
					Attributes: []snapshot.Attribute{{Key: "tag", Value: s.Tag}},
				})
			}
			g.Children = append(g.Children, lg)
		}
		tree = append(tree, g)
	}
	return tree, nil
}
