package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/constgen"
	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/config"
)

// RootCmd creates and returns the root command for the constgen CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "constgen",
		Short: "Generate constant classes from project settings",
		Long: `constgen keeps generated constant files in step with the project's
layers, tags, sorting layers, scenes, navigation areas and animator
controllers.

Each domain is written to its own file (_LAYERS.cs, _ANIMSTATES.cs, ...).
A baseline of the last generated values is kept so reloads only rewrite
files whose source actually changed.`,
		Version:       constgen.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			output.SetWriter(cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringP("config", "c", config.FileName, "Path to the constgen config file")
	cmd.PersistentFlags().Bool("no-baseline", false, "Keep baselines in memory only for this run")

	return cmd
}

// NewApp returns the root command with every subcommand attached.
func NewApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(InitCmd())
	root.AddCommand(ReloadCmd())
	root.AddCommand(GenerateCmd())
	root.AddCommand(ForceCmd())
	root.AddCommand(DiffCmd())
	root.AddCommand(WatchCmd())
	root.AddCommand(DomainsCmd())
	return root
}
