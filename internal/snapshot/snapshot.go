// Package snapshot models captures of project state: a flat ordered list of
// names, or a tree of named groups (controller → layer → state).
//
// A snapshot handed to the change detector or to a baseline store is treated
// as immutable. Stores keep their own copies via Clone.
package snapshot

import "fmt"

// Shape identifies the layout of a snapshot.
type Shape int

const (
	ShapeFlat Shape = iota
	ShapeTree
)

// String returns the name used in baseline files.
func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeTree:
		return "tree"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape is the inverse of Shape.String.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "flat":
		return ShapeFlat, nil
	case "tree":
		return ShapeTree, nil
	default:
		return 0, fmt.Errorf("unknown snapshot shape %q", s)
	}
}

// Snapshot is either a Flat or a Tree.
type Snapshot interface {
	Shape() Shape
	Len() int
}

// Flat is an ordered list of names. Order is authoritative for both
// comparison and generated indices. Duplicates are allowed.
type Flat []string

func (f Flat) Shape() Shape { return ShapeFlat }
func (f Flat) Len() int     { return len(f) }

// Clone returns a copy that shares no memory with f.
func (f Flat) Clone() Flat {
	if f == nil {
		return nil
	}
	out := make(Flat, len(f))
	copy(out, f)
	return out
}

// Tree is an ordered list of top-level groups.
type Tree []Group

func (t Tree) Shape() Shape { return ShapeTree }
func (t Tree) Len() int     { return len(t) }

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i := range t {
		out[i] = t[i].Clone()
	}
	return out
}

// Group is a named node. Leaves may carry attributes (a state's tag).
type Group struct {
	Name       string      `yaml:"name" toml:"name"`
	Children   []Group     `yaml:"children,omitempty" toml:"children,omitempty"`
	Attributes []Attribute `yaml:"attributes,omitempty" toml:"attributes,omitempty"`
}

// Attribute is a key/value pair on a group.
type Attribute struct {
	Key   string `yaml:"key" toml:"key"`
	Value string `yaml:"value" toml:"value"`
}

// Clone returns a deep copy of g.
func (g Group) Clone() Group {
	out := Group{Name: g.Name}
	if g.Children != nil {
		out.Children = make([]Group, len(g.Children))
		for i := range g.Children {
			out.Children[i] = g.Children[i].Clone()
		}
	}
	if g.Attributes != nil {
		out.Attributes = make([]Attribute, len(g.Attributes))
		copy(out.Attributes, g.Attributes)
	}
	return out
}

// Attr returns the value of the first attribute named key, or "".
func (g Group) Attr(key string) string {
	for _, a := range g.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Clone copies any snapshot. A nil snapshot clones to nil.
func Clone(s Snapshot) Snapshot {
	switch v := s.(type) {
	case nil:
		return nil
	case Flat:
		return v.Clone()
	case Tree:
		return v.Clone()
	default:
		panic(fmt.Sprintf("snapshot: unsupported type %T", s))
	}
}
