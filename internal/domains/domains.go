// Package domains defines the eight constant files constgen generates and
// how each one's snapshot is laid out as declarations.
package domains

import (
	"strings"

	"github.com/simonhull/constgen/internal/driver"
	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/snapshot"
	"github.com/simonhull/constgen/internal/source"
)

// Domain keys.
const (
	Layers        = "layers"
	Tags          = "tags"
	SortingLayers = "sortingLayers"
	Scenes        = "scenes"
	NavAreas      = "navAreas"
	AnimParams    = "animParams"
	AnimLayers    = "animLayers"
	AnimStates    = "animStates"
)

// Keys lists every domain in generation order.
var Keys = []string{Layers, Tags, SortingLayers, Scenes, NavAreas, AnimParams, AnimLayers, AnimStates}

// Descriptors returns the descriptor of every domain, reading from p.
func Descriptors(p source.Project) []driver.Descriptor {
	flat := func(f func() (snapshot.Flat, error)) func() (snapshot.Snapshot, error) {
		return func() (snapshot.Snapshot, error) { return f() }
	}
	tree := func(f func() (snapshot.Tree, error)) func() (snapshot.Snapshot, error) {
		return func() (snapshot.Snapshot, error) { return f() }
	}

	return []driver.Descriptor{
		{Key: Layers, FileName: "_LAYERS", Generator: "LayersGen", Shape: snapshot.ShapeFlat,
			Retrieve: flat(p.Layers), Layout: SlotInts},
		{Key: Tags, FileName: "_TAGS", Generator: "TagsGen", Shape: snapshot.ShapeFlat,
			Retrieve: flat(p.Tags), Layout: Strings},
		{Key: SortingLayers, FileName: "_SORTINGLAYERS", Generator: "SortingLayersGen", Shape: snapshot.ShapeFlat,
			Retrieve: flat(p.SortingLayers), Layout: Strings},
		{Key: Scenes, FileName: "_SCENES", Generator: "ScenesGen", Shape: snapshot.ShapeFlat,
			Retrieve: flat(p.Scenes), Layout: SceneIndices},
		{Key: NavAreas, FileName: "_NAVAREAS", Generator: "NavAreasGen", Shape: snapshot.ShapeFlat,
			Retrieve: flat(p.NavAreas), Layout: SlotInts},
		{Key: AnimParams, FileName: "_ANIMPARAMS", Generator: "AnimParamsGen", Shape: snapshot.ShapeTree,
			Retrieve: tree(p.AnimParams), Layout: ParamStrings},
		{Key: AnimLayers, FileName: "_ANIMLAYERS", Generator: "AnimLayersGen", Shape: snapshot.ShapeTree,
			Retrieve: tree(p.AnimLayers), Layout: LayerIndices},
		{Key: AnimStates, FileName: "_ANIMSTATES", Generator: "AnimStatesGen", Shape: snapshot.ShapeTree,
			Retrieve: tree(p.AnimStates), Layout: StateClasses},
	}
}

// Select returns the descriptors whose keys are in keys, in the order of
// all. An unknown key is an error.
func Select(all []driver.Descriptor, keys []string) ([]driver.Descriptor, error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []driver.Descriptor
	for _, d := range all {
		if want[d.Key] {
			out = append(out, d)
			delete(want, d.Key)
		}
	}
	for _, k := range keys {
		if want[k] {
			return nil, errors.WithHintf(errors.Newf("unknown domain %q", k),
				"known domains: %s", strings.Join(Keys, ", "))
		}
	}
	return out, nil
}
