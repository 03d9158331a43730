package domains

import (
	"strings"

	"github.com/simonhull/constgen/internal/emit"
	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/snapshot"
)

// SlotInts declares one int per non-empty slot, valued by slot position.
func SlotInts(s snapshot.Snapshot) ([]emit.Decl, error) {
	flat, err := asFlat(s)
	if err != nil {
		return nil, err
	}
	var decls []emit.Decl
	for i, name := range flat {
		if name == "" {
			continue
		}
		decls = append(decls, emit.Int(name, i))
	}
	return decls, nil
}

// Strings declares one string per non-empty name, valued by the name.
func Strings(s snapshot.Snapshot) ([]emit.Decl, error) {
	flat, err := asFlat(s)
	if err != nil {
		return nil, err
	}
	var decls []emit.Decl
	for _, name := range flat {
		if name == "" {
			continue
		}
		decls = append(decls, emit.String(name, name))
	}
	return decls, nil
}

// SceneIndices declares one int per scene path, named after the file and
// valued by build index.
func SceneIndices(s snapshot.Snapshot) ([]emit.Decl, error) {
	flat, err := asFlat(s)
	if err != nil {
		return nil, err
	}
	decls := make([]emit.Decl, 0, len(flat))
	for i, path := range flat {
		decls = append(decls, emit.Int(SceneName(path), i))
	}
	return decls, nil
}

// SceneName returns the file name of a scene path without its extension:
// "Assets/Scenes/Menu.unity" → "Menu".
func SceneName(path string) string {
	name := path[strings.LastIndexAny(path, `/\`)+1:]
	if dot := strings.LastIndexByte(name, '.'); dot > 0 {
		name = name[:dot]
	}
	return name
}

// ParamStrings declares a class per controller holding one string per
// parameter.
func ParamStrings(s snapshot.Snapshot) ([]emit.Decl, error) {
	tree, err := asTree(s)
	if err != nil {
		return nil, err
	}
	decls := make([]emit.Decl, 0, len(tree))
	for _, c := range tree {
		members := make([]emit.Decl, 0, len(c.Children))
		for _, p := range c.Children {
			members = append(members, emit.String(p.Name, p.Name))
		}
		decls = append(decls, emit.Class(c.Name, members...))
	}
	return decls, nil
}

// LayerIndices declares a class per controller holding one int per layer,
// valued by layer index.
func LayerIndices(s snapshot.Snapshot) ([]emit.Decl, error) {
	tree, err := asTree(s)
	if err != nil {
		return nil, err
	}
	decls := make([]emit.Decl, 0, len(tree))
	for _, c := range tree {
		members := make([]emit.Decl, 0, len(c.Children))
		for i, l := range c.Children {
			members = append(members, emit.Int(l.Name, i))
		}
		decls = append(decls, emit.Class(c.Name, members...))
	}
	return decls, nil
}

// StateClasses nests controller → layer → state classes. Each state class
// holds a name constant and, when the state is tagged, a tag constant.
func StateClasses(s snapshot.Snapshot) ([]emit.Decl, error) {
	tree, err := asTree(s)
	if err != nil {
		return nil, err
	}
	decls := make([]emit.Decl, 0, len(tree))
	for _, c := range tree {
		layers := make([]emit.Decl, 0, len(c.Children))
		for _, l := range c.Children {
			states := make([]emit.Decl, 0, len(l.Children))
			for _, st := range l.Children {
				members := []emit.Decl{emit.String("name", st.Name)}
				if tag := st.Attr("tag"); tag != "" {
					members = append(members, emit.String("tag", tag))
				}
				states = append(states, emit.Class(st.Name, members...))
			}
			layers = append(layers, emit.Class(l.Name, states...))
		}
		decls = append(decls, emit.Class(c.Name, layers...))
	}
	return decls, nil
}

func asFlat(s snapshot.Snapshot) (snapshot.Flat, error) {
	f, ok := s.(snapshot.Flat)
	if !ok {
		return nil, errors.Newf("expected a flat snapshot, got %T", s)
	}
	return f, nil
}

func asTree(s snapshot.Snapshot) (snapshot.Tree, error) {
	t, ok := s.(snapshot.Tree)
	if !ok {
		return nil, errors.Newf("expected a tree snapshot, got %T", s)
	}
	return t, nil
}
