package generator_test

import (
	"embed"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/constgen/fledge/generator"
)

//go:embed testdata/banner.tmpl
var testTemplates embed.FS

type bannerData struct {
	Header string
	Domain string
}

func TestRenderer_RenderFS(t *testing.T) {
	r := generator.NewRenderer()

	out, err := r.RenderFS(testTemplates, "testdata/banner.tmpl", bannerData{
		Header: "Generated file\n\nDo not edit",
		Domain: "tags",
	})
	require.NoError(t, err)
	assert.Equal(t, "// Generated file\n//\n// Do not edit\n// Domain: TAGS\n", string(out))
}

func TestRenderer_RenderFSMissing(t *testing.T) {
	_, err := generator.NewRenderer().RenderFS(testTemplates, "testdata/nope.tmpl", nil)
	assert.ErrorContains(t, err, "failed to read template from fs")
}

func TestRenderer_RenderFileCachesUntilCleared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banner.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("v1 {{ .Domain }}"), 0644))

	r := generator.NewRenderer()
	out, err := r.RenderFile(path, bannerData{Domain: "layers"})
	require.NoError(t, err)
	assert.Equal(t, "v1 layers", string(out))

	require.NoError(t, os.WriteFile(path, []byte("v2 {{ .Domain }}"), 0644))
	out, err = r.RenderFile(path, bannerData{Domain: "layers"})
	require.NoError(t, err)
	assert.Equal(t, "v1 layers", string(out), "cached template should be reused")

	r.ClearCache()
	out, err = r.RenderFile(path, bannerData{Domain: "layers"})
	require.NoError(t, err)
	assert.Equal(t, "v2 layers", string(out))
}

func TestRenderer_RenderFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.tmpl")
	require.NoError(t, os.WriteFile(bad, []byte("{{ .Domain "), 0644))
	exec := filepath.Join(dir, "exec.tmpl")
	require.NoError(t, os.WriteFile(exec, []byte("{{ .Missing.Field }}"), 0644))

	r := generator.NewRenderer()

	_, err := r.RenderFile(bad, nil)
	assert.ErrorContains(t, err, "failed to parse template")

	_, err = r.RenderFile(exec, bannerData{})
	assert.ErrorContains(t, err, "failed to render template")

	_, err = r.RenderFile(filepath.Join(dir, "nope.tmpl"), nil)
	assert.ErrorContains(t, err, "failed to read template file")
}

func TestRenderer_ConcurrentUse(t *testing.T) {
	r := generator.NewRenderer()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := r.RenderFS(testTemplates, "testdata/banner.tmpl", bannerData{Header: "Generated", Domain: "scenes"})
			assert.NoError(t, err)
			assert.Equal(t, "// Generated\n// Domain: SCENES\n", string(out))
		}()
	}
	wg.Wait()
}

func TestComment(t *testing.T) {
	assert.Equal(t, "// a\n//\n// b", generator.Comment("a\n\nb\n"))
	assert.Equal(t, "// single", generator.Comment("single"))
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "x", generator.Default("x", ""))
	assert.Equal(t, "x", generator.Default("x", nil))
	assert.Equal(t, "x", generator.Default("x", []string{}))
	assert.Equal(t, 0, generator.Default(5, 0))
	assert.Equal(t, "y", generator.Default("x", "y"))
}
