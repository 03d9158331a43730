// Package generator provides the file operations, template rendering and
// diffs shared by constgen's generators.
//
// # Operations
//
// Generated files are written and removed through Operation values so the
// CLI can validate, execute and report them uniformly:
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "Generated/_TAGS.cs", Content: src, Mode: 0644},
//	}
//	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true}); err != nil {
//	    return err
//	}
//
// # Rendering
//
// Renderer parses text/template sources once and caches them. Banners and
// other boilerplate come from embedded templates that users can override
// with a file on disk.
//
// # Diffs
//
// GenerateDiff produces a coloured unified diff (Myers algorithm) between the
// file on disk and freshly generated content.
package generator
