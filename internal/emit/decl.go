package emit

import (
	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/ident"
)

// Kind is the kind of a declaration.
type Kind int

const (
	KindClass Kind = iota
	KindInt
	KindString
)

// Decl is one declaration inside a generated class body.
type Decl struct {
	Kind    Kind
	Name    string // display name, sanitized into ID by Resolve
	Int     int
	Str     string
	Members []Decl // nested class body

	ID string // set by Resolve
}

// Class declares a nested class.
func Class(name string, members ...Decl) Decl {
	return Decl{Kind: KindClass, Name: name, Members: members}
}

// Int declares an integer constant.
func Int(name string, v int) Decl {
	return Decl{Kind: KindInt, Name: name, Int: v}
}

// String declares a string constant.
func String(name, v string) Decl {
	return Decl{Kind: KindString, Name: name, Str: v}
}

// Resolve assigns identifiers to decls and their members, in place.
//
// Every class body is its own scope. Within a scope two declarations may not
// share an identifier, whether their names differ ("Foo Bar" and "Foo_Bar")
// or repeat, and no member may take the name of its enclosing class.
// Nothing is partially useful after an error; callers must not emit.
func Resolve(d Dialect, class string, decls []Decl) error {
	return resolve(d, class, class, decls)
}

func resolve(d Dialect, scope, enclosing string, decls []Decl) error {
	set := ident.NewSet(scope, d.Identifier)
	set.Reserve(enclosing, "class "+enclosing)
	seen := make(map[string]bool, len(decls))

	for i := range decls {
		decl := &decls[i]
		id, err := set.Claim(decl.Name)
		if err != nil {
			return err
		}
		if seen[id] {
			err := errors.Wrapf(errors.ErrIdentifierCollision, "%s: %q appears more than once", scope, decl.Name)
			return errors.WithHintf(err, "remove or rename the duplicate %q", decl.Name)
		}
		seen[id] = true
		decl.ID = id

		if decl.Kind == KindClass {
			if err := resolve(d, scope+"."+id, id, decl.Members); err != nil {
				return err
			}
		}
	}
	return nil
}
