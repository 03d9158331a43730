package emit

import (
	"embed"
	"slices"
	"strings"

	"github.com/simonhull/constgen/fledge/generator"
	"github.com/simonhull/constgen/internal/ident"
)

//go:embed templates/*.tmpl
var templates embed.FS

const csharpBanner = "templates/csharp_banner.tmpl"

// CSharp emits Unity-style C# constant classes.
type CSharp struct {
	namespace      string
	imports        []string
	bannerTemplate string
	renderer       *generator.Renderer
}

// NewCSharp creates the C# dialect. An empty namespace writes the class at
// top level. bannerTemplate, when set, is a template file that replaces the
// embedded banner.
func NewCSharp(namespace string, imports []string, bannerTemplate string) *CSharp {
	return &CSharp{
		namespace:      namespace,
		imports:        slices.Clone(imports),
		bannerTemplate: bannerTemplate,
		renderer:       generator.NewRenderer(),
	}
}

func (c *CSharp) Extension() string { return ".cs" }

func (c *CSharp) Banner(data BannerData) ([]byte, error) {
	if c.bannerTemplate != "" {
		return c.renderer.RenderFile(c.bannerTemplate, data)
	}
	return c.renderer.RenderFS(templates, csharpBanner, data)
}

// Reload drops cached banner templates so an edited override is re-read.
func (c *CSharp) Reload() { c.renderer.ClearCache() }

func (c *CSharp) Imports() []string           { return c.imports }
func (c *CSharp) Namespace() string           { return c.namespace }
func (c *CSharp) NamespaceTemplate() string   { return "namespace {0}" }
func (c *CSharp) ClassTemplate() string       { return "public static class {0}" }
func (c *CSharp) IntConstTemplate() string    { return "public const int {0} = {1};" }
func (c *CSharp) StringConstTemplate() string { return "public const string {0} = @\"{1}\";" }

// EscapeString escapes v for a verbatim string literal, where the only
// special character is the double quote.
func (c *CSharp) EscapeString(v string) string {
	return strings.ReplaceAll(v, `"`, `""`)
}

// Identifier sanitizes raw and prefixes reserved keywords with '_'.
func (c *CSharp) Identifier(raw string) string {
	id := ident.MakeIdentifier(raw)
	if _, ok := csharpKeywords[id]; ok {
		return "_" + id
	}
	return id
}

// IsQualifiedName reports whether name is a dotted namespace such as
// UnityEngine.SceneManagement, with no part needing sanitizing.
func IsQualifiedName(name string) bool {
	var c CSharp
	for _, part := range strings.Split(name, ".") {
		if part == "" || c.Identifier(part) != part {
			return false
		}
	}
	return true
}

var csharpKeywords = map[string]struct{}{}

func init() {
	for _, k := range strings.Fields(`
		abstract as base bool break byte case catch char checked class const
		continue decimal default delegate do double else enum event explicit
		extern false finally fixed float for foreach goto if implicit in int
		interface internal is lock long namespace new null object operator out
		override params private protected public readonly ref return sbyte
		sealed short sizeof stackalloc static string struct switch this throw
		true try typeof uint ulong unchecked unsafe ushort using virtual void
		volatile while`) {
		csharpKeywords[k] = struct{}{}
	}
}
