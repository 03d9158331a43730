package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/constgen/fledge/output"
	"github.com/simonhull/constgen/internal/config"
	"github.com/simonhull/constgen/internal/errors"
)

// InitCmd creates and returns the 'init' command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default constgen.yml",
		Long: `Write a config file with every setting at its default value.
The file is written to the path given by --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(errors.Newf("%s already exists", path),
					"pass --force to overwrite it")
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			output.Success(fmt.Sprintf("Created %s", path))
			output.Step("edit project and controllers to point at your sources, then run `constgen reload`")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}
