// Package output prints styled status lines for the constgen CLI.
//
// Every command reports through this package so generated, skipped and
// failed domains look the same everywhere:
//
//	output.Success("layers: generated Assets/ConstGen/Generated/_LAYERS.cs")
//	output.Warn("scenes: file missing and regeneration disabled")
//	output.Error("tags: identifier collision")
//
// Verbose lines only appear after SetVerbose(true). Output goes to stdout
// until SetWriter redirects it; the CLI points it at each command's output
// stream.
package output
