// Package ident turns display names into identifiers that are valid in the
// generated source and detects when two names collapse onto one identifier.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/simonhull/constgen/internal/errors"
)

// Fallback is returned when a name contains nothing usable.
const Fallback = "_"

// MakeIdentifier maps raw to a token made of [A-Za-z0-9_].
//
// Accented letters lose their marks ("Café" → "Cafe"), every other rune
// outside the set becomes '_', and a leading digit gets a '_' prefix.
// Every input has a defined output.
func MakeIdentifier(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 1)

	for _, r := range stripMarks(raw) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	id := b.String()
	if id == "" {
		return Fallback
	}
	if id[0] >= '0' && id[0] <= '9' {
		return "_" + id
	}
	return id
}

// stripMarks decomposes s and drops combining marks. The input is returned
// unchanged if the transform fails.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Set claims identifiers within one scope of generated output (one class
// body). Two different raw names that produce the same identifier collide.
type Set struct {
	scope  string
	mapper func(string) string
	owners map[string]string
}

// NewSet creates a claim set for scope. mapper converts a raw name to its
// final identifier; nil means MakeIdentifier.
func NewSet(scope string, mapper func(string) string) *Set {
	if mapper == nil {
		mapper = MakeIdentifier
	}
	return &Set{
		scope:  scope,
		mapper: mapper,
		owners: make(map[string]string),
	}
}

// Claim returns the identifier for raw. Claiming the same raw name twice is
// allowed and yields the same identifier.
func (s *Set) Claim(raw string) (string, error) {
	id := s.mapper(raw)
	if owner, ok := s.owners[id]; ok && owner != raw {
		err := errors.Wrapf(errors.ErrIdentifierCollision,
			"%s: %q and %q both map to %s", s.scope, owner, raw, id)
		return "", errors.WithHintf(err, "rename %q or %q so they differ in letters or digits", owner, raw)
	}
	s.owners[id] = raw
	return id, nil
}

// Reserve marks id as taken by owner without sanitizing it. A nested type
// reserves its own name so no member can shadow it.
func (s *Set) Reserve(id, owner string) {
	s.owners[id] = owner
}

// Len returns the number of distinct identifiers claimed.
func (s *Set) Len() int {
	return len(s.owners)
}
