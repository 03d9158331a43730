package emit

import (
	"strings"

	"github.com/simonhull/constgen/internal/codewriter"
	"github.com/simonhull/constgen/internal/errors"
)

// File is one generated constants file.
type File struct {
	Generator string
	Domain    string
	Class     string // top-level class, also the file name stem
	Decls     []Decl // resolved
}

// BannerDataFor returns the banner template data for f.
func BannerDataFor(f File) BannerData {
	return BannerData{
		Tool:      "constgen",
		Generator: f.Generator,
		Domain:    f.Domain,
		FileName:  f.Class,
	}
}

// Write renders f: banner, imports, optional namespace, then the top-level
// class holding f.Decls. Decls must have been passed through Resolve.
func Write(w *codewriter.Writer, d Dialect, f File) error {
	banner, err := d.Banner(BannerDataFor(f))
	if err != nil {
		return errors.Wrapf(err, "render banner for %s", f.Domain)
	}
	if text := strings.TrimRight(string(banner), "\n"); text != "" {
		for _, line := range strings.Split(text, "\n") {
			w.WriteLine(line)
		}
		w.WriteBlank()
	}
	if imports := d.Imports(); len(imports) > 0 {
		w.WriteImports(imports...)
	}

	class := func() error {
		return writeClass(w, d, f.Class, f.Decls)
	}
	if ns := d.Namespace(); ns != "" {
		header, err := codewriter.Format(d.NamespaceTemplate(), ns)
		if err != nil {
			return err
		}
		return w.Block(header, class)
	}
	return class()
}

func writeClass(w *codewriter.Writer, d Dialect, id string, members []Decl) error {
	header, err := codewriter.Format(d.ClassTemplate(), id)
	if err != nil {
		return err
	}
	return w.Block(header, func() error {
		return writeDecls(w, d, members)
	})
}

func writeDecls(w *codewriter.Writer, d Dialect, decls []Decl) error {
	for _, decl := range decls {
		if decl.ID == "" {
			return errors.Newf("declaration %q was not resolved", decl.Name)
		}
		var err error
		switch decl.Kind {
		case KindClass:
			err = writeClass(w, d, decl.ID, decl.Members)
		case KindInt:
			err = w.WriteFormatted(d.IntConstTemplate(), decl.ID, decl.Int)
		case KindString:
			err = w.WriteFormatted(d.StringConstTemplate(), decl.ID, d.EscapeString(decl.Str))
		default:
			err = errors.Newf("unknown declaration kind %d", decl.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
