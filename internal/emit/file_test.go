package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/constgen/internal/codewriter"
)

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func emptyBanner(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "banner.tmpl")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	return path
}

func render(t *testing.T, d Dialect, f File) string {
	t.Helper()
	require.NoError(t, Resolve(d, f.Class, f.Decls))
	w := codewriter.New()
	require.NoError(t, Write(w, d, f))
	assert.Zero(t, w.Depth())
	return w.String()
}

func TestWrite_Flat(t *testing.T) {
	c := NewCSharp("ConstGen", []string{"UnityEngine"}, emptyBanner(t))

	got := render(t, c, File{
		Generator: "TagsGen",
		Domain:    "tags",
		Class:     "_TAGS",
		Decls: []Decl{
			String("Untagged", "Untagged"),
			String("Main Camera", "Main Camera"),
			String(`Say "Hi"`, `Say "Hi"`),
		},
	})

	assert.Equal(t, lines(
		"using UnityEngine;",
		"",
		"namespace ConstGen",
		"{",
		"    public static class _TAGS",
		"    {",
		`        public const string Untagged = @"Untagged";`,
		`        public const string Main_Camera = @"Main Camera";`,
		`        public const string Say__Hi_ = @"Say ""Hi""";`,
		"    }",
		"}",
	), got)
}

func TestWrite_TreeWithoutNamespace(t *testing.T) {
	c := NewCSharp("", nil, emptyBanner(t))

	got := render(t, c, File{
		Generator: "AnimStatesGen",
		Domain:    "animStates",
		Class:     "_ANIMSTATES",
		Decls: []Decl{
			Class("Hero",
				Class("Base Layer",
					Class("Idle", String("name", "Idle"), String("tag", "calm")),
				),
			),
		},
	})

	assert.Equal(t, lines(
		"public static class _ANIMSTATES",
		"{",
		"    public static class Hero",
		"    {",
		"        public static class Base_Layer",
		"        {",
		"            public static class Idle",
		"            {",
		`                public const string name = @"Idle";`,
		`                public const string tag = @"calm";`,
		"            }",
		"        }",
		"    }",
		"}",
	), got)
}

func TestWrite_EmbeddedBannerAndIntConsts(t *testing.T) {
	c := NewCSharp("ConstGen", []string{"UnityEngine"}, "")

	got := render(t, c, File{
		Generator: "LayersGen",
		Domain:    "layers",
		Class:     "_LAYERS",
		Decls:     []Decl{Int("Default", 0), Int("Water", 4)},
	})

	assert.True(t, strings.HasPrefix(got, "//----"), "banner comes first")
	assert.Contains(t, got, "(LayersGen)")
	assert.Contains(t, got, "\n\nusing UnityEngine;\n\n")
	assert.Contains(t, got, "        public const int Default = 0;\n")
	assert.Contains(t, got, "        public const int Water = 4;\n")
}

func TestWrite_UnresolvedFails(t *testing.T) {
	c := NewCSharp("", nil, emptyBanner(t))
	w := codewriter.New()

	err := Write(w, c, File{Class: "_TAGS", Decls: []Decl{String("x", "x")}})
	assert.ErrorContains(t, err, "not resolved")
	assert.Zero(t, w.Depth(), "scopes are closed even on error")
}
