// Package input reads answers to interactive prompts.
//
// constgen asks before destructive operations such as force-regenerating
// every domain:
//
//	if !input.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Regenerate all 8 domains?", false) {
//	    return nil
//	}
//
// The reader and writer are explicit so prompts follow the command's
// streams and can be tested without a terminal.
package input
