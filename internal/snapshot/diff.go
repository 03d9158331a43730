package snapshot

import "fmt"

// HasChanged reports whether next differs from old.
//
// The comparison is positional, not a minimal edit script: inserting one
// entry at the front marks every later position as different. A nil old
// (no baseline yet) always counts as changed. Comparing a Flat with a Tree
// is a programming error and panics.
func HasChanged(old, next Snapshot) bool {
	if old == nil {
		return true
	}
	if next == nil {
		return old.Len() != 0
	}
	if old.Shape() != next.Shape() {
		panic(fmt.Sprintf("snapshot: cannot compare %s baseline with %s snapshot", old.Shape(), next.Shape()))
	}

	switch o := old.(type) {
	case Flat:
		return flatChanged(o, next.(Flat))
	case Tree:
		return groupsChanged(o, next.(Tree))
	default:
		panic(fmt.Sprintf("snapshot: unsupported type %T", old))
	}
}

func flatChanged(old, next Flat) bool {
	if len(old) != len(next) {
		return true
	}
	for i := range old {
		if old[i] != next[i] {
			return true
		}
	}
	return false
}

// groupsChanged walks both levels depth first and stops at the first
// divergence.
func groupsChanged(old, next []Group) bool {
	if len(old) != len(next) {
		return true
	}
	for i := range old {
		if groupChanged(old[i], next[i]) {
			return true
		}
	}
	return false
}

func groupChanged(old, next Group) bool {
	if old.Name != next.Name {
		return true
	}
	if len(old.Attributes) != len(next.Attributes) {
		return true
	}
	for i := range old.Attributes {
		if old.Attributes[i] != next.Attributes[i] {
			return true
		}
	}
	return groupsChanged(old.Children, next.Children)
}
