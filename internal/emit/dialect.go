// Package emit renders constant files in a target language.
//
// A Dialect supplies the language specific pieces (banner, imports,
// declaration templates, identifier rules). Domains describe their output
// as a tree of Decl values; Resolve assigns collision-checked identifiers
// to that tree and Write renders it through a codewriter.Writer.
package emit

// BannerData is passed to the banner template.
type BannerData struct {
	Tool      string // always "constgen"
	Generator string // e.g. "LayersGen"
	Domain    string // e.g. "layers"
	FileName  string // e.g. "_LAYERS"
}

// Dialect is the replaceable target-language template.
//
// Template methods return codewriter.Format templates: ClassTemplate takes
// {0} = identifier, the constant templates take {0} = identifier and
// {1} = value. String values are passed through EscapeString first.
type Dialect interface {
	Extension() string
	Banner(data BannerData) ([]byte, error)
	Imports() []string
	Namespace() string
	NamespaceTemplate() string
	ClassTemplate() string
	IntConstTemplate() string
	StringConstTemplate() string
	EscapeString(v string) string
	Identifier(raw string) string
}
