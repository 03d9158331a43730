package commands

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/simonhull/constgen/internal/config"
	"github.com/simonhull/constgen/internal/domains"
	"github.com/simonhull/constgen/internal/emit"
	"github.com/simonhull/constgen/internal/source"
)

// DomainsCmd creates and returns the 'domains' command
func DomainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List the domains constgen can generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path, !cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cell := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("DOMAIN", "FILE", "SHAPE", "GENERATOR", "ENABLED").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return header
					}
					return cell
				})
			ext := emit.NewCSharp(cfg.Namespace, cfg.Imports, cfg.BannerTemplate).Extension()
			for _, d := range domains.Descriptors(source.Project{}) {
				enabled := "no"
				if slices.Contains(cfg.Domains, d.Key) {
					enabled = "yes"
				}
				t.Row(d.Key, d.FileName+ext, d.Shape.String(), d.Generator, enabled)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
