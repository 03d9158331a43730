package commands

import (
	"fmt"
	"path/filepath"

	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/driver"
	"github.com/simonhull/constgen/internal/errors"
)

// printReport prints one line per domain. Up-to-date and untouched domains
// only show in verbose mode.
func printReport(r driver.Report, outputDir string) {
	for _, e := range r.Entries {
		file := displayPath(e.Path, outputDir)
		switch {
		case e.Err != nil:
			output.Error(fmt.Sprintf("%s: %s (%s)", e.Domain, e.Err, errors.Kind(e.Err)))
			printHints(e.Err)
		case e.Warning != nil:
			output.Warn(e.Warning.Error())
		case e.Action == driver.ActionGenerated, e.Action == driver.ActionRegenerated:
			output.Success(fmt.Sprintf("%s %s", e.Action, file))
		case e.Action == driver.ActionDeleted:
			output.Success(fmt.Sprintf("deleted %s", file))
			output.Step("regenerate_on_missing is off, the file stays absent")
		case e.Action == driver.ActionUpToDate:
			output.Verbose(fmt.Sprintf("%s up to date", file))
		default:
			output.Verbose(fmt.Sprintf("%s unchanged (%s)", file, e.State))
		}
	}
	if !r.Changed() && len(r.Failed()) == 0 && len(r.Warnings()) == 0 {
		output.Info("Everything up to date")
	}
}

// PrintError prints a command error and its hints.
func PrintError(err error) {
	output.Error(err.Error())
	printHints(err)
}

func printHints(err error) {
	for _, h := range errors.GetAllHints(err) {
		output.Step("hint: " + h)
	}
}

func displayPath(path, outputDir string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(outputDir, path); err == nil {
		return rel
	}
	return path
}
