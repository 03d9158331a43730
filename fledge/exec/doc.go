// Package exec runs external commands with streamed, prefixed output and
// an optional spinner.
//
// constgen uses it for the post-generation hook, typically a formatter or
// an asset refresh script:
//
//	e := exec.NewExecutor(&exec.Options{
//	    Dir:     projectDir,
//	    Env:     []string{"CONSTGEN_CHANGED=Assets/Generated/_LAYERS.cs"},
//	    Timeout: time.Minute,
//	})
//	err := e.Run(ctx, "dotnet", "format", "whitespace")
//
// RunWithSpinner captures the command's output instead of streaming it and
// prints it only when the command fails.
package exec
