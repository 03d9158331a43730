package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/constgen/fledge/input"
	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/driver"
)

// ReloadCmd runs the reload cycle, the same check the editor runs after
// every script reload.
func ReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Regenerate missing or outdated constant files",
		Long: `Run the reload cycle for every configured domain.

For each domain:
  file missing, regenerate_on_missing on   → generate it
  file missing, only update_on_reload on   → warn
  file present, update_on_reload on        → regenerate when the source changed
  anything else                            → leave it alone`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			return s.finish(s.registry.LoadAll())
		},
	}
}

// GenerateCmd creates and returns the 'generate' command
func GenerateCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "generate [domain...]",
		Short: "Write constant files unconditionally",
		Long: `Retrieve the current values of each named domain, write its file and
store the values as the new baseline.

Examples:
  constgen generate layers tags
  constgen generate --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			keys, err := s.keys(args, all)
			if err != nil {
				return err
			}
			output.Verbose(fmt.Sprintf("Generating %v", keys))
			return s.finish(s.registry.Run(keys, driver.OpGenerate))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Generate every configured domain")
	return cmd
}

// ForceCmd creates and returns the 'force' command
func ForceCmd() *cobra.Command {
	var all, yes bool

	cmd := &cobra.Command{
		Use:   "force [domain...]",
		Short: "Delete constant files and generate them again",
		Long: `Delete each named domain's file, then generate it again when
regenerate_on_missing is on. With the option off the files stay deleted
and their baselines are kept.

Examples:
  constgen force animStates
  constgen force --all --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			keys, err := s.keys(args, all)
			if err != nil {
				return err
			}

			if !yes {
				verb := "Delete and regenerate"
				if !s.cfg.RegenerateOnMissing {
					verb = "Delete"
				}
				msg := fmt.Sprintf("%s %d constant file(s)?", verb, len(keys))
				if !input.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), msg, false) {
					output.Info("Aborted")
					return s.close()
				}
			}
			return s.finish(s.registry.Run(keys, driver.OpForceGenerate))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Force every configured domain")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
