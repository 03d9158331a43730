package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSharp_Identifier(t *testing.T) {
	c := NewCSharp("ConstGen", nil, "")

	tests := []struct {
		raw  string
		want string
	}{
		{"Player", "Player"},
		{"Ignore Raycast", "Ignore_Raycast"},
		{"class", "_class"},
		{"string", "_string"},
		{"Class", "Class"},
		{"2D", "_2D"},
		{"Café", "Cafe"},
		{"", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Identifier(tt.raw))
		})
	}
}

func TestCSharp_EscapeString(t *testing.T) {
	c := NewCSharp("", nil, "")
	assert.Equal(t, `say ""hi""`, c.EscapeString(`say "hi"`))
	assert.Equal(t, `C:\Scenes\Main`, c.EscapeString(`C:\Scenes\Main`), "backslashes are literal in verbatim strings")
}

func TestIsQualifiedName(t *testing.T) {
	for _, name := range []string{"UnityEngine", "UnityEngine.SceneManagement", "_Game.Const2"} {
		assert.True(t, IsQualifiedName(name), name)
	}
	for _, name := range []string{"", "Game.", ".Game", "My Game", "Game.class", "2D.Game", "Game-Consts"} {
		assert.False(t, IsQualifiedName(name), name)
	}
}

func TestCSharp_EmbeddedBanner(t *testing.T) {
	c := NewCSharp("", nil, "")

	out, err := c.Banner(BannerData{Tool: "constgen", Generator: "TagsGen", Domain: "tags", FileName: "_TAGS"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<auto-generated>")
	assert.Contains(t, string(out), "constgen (TagsGen)")
	assert.Contains(t, string(out), "whenever the tags change")
}

func TestCSharp_BannerOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banner.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("// {{ .FileName }} v1\n"), 0644))

	c := NewCSharp("", nil, path)
	out, err := c.Banner(BannerData{FileName: "_SCENES"})
	require.NoError(t, err)
	assert.Equal(t, "// _SCENES v1\n", string(out))

	require.NoError(t, os.WriteFile(path, []byte("// {{ .FileName }} v2\n"), 0644))
	c.Reload()
	out, err = c.Banner(BannerData{FileName: "_SCENES"})
	require.NoError(t, err)
	assert.Equal(t, "// _SCENES v2\n", string(out))
}

func TestCSharp_BannerOverrideMissing(t *testing.T) {
	c := NewCSharp("", nil, filepath.Join(t.TempDir(), "missing.tmpl"))
	_, err := c.Banner(BannerData{})
	assert.Error(t, err)
}
