package main

import (
	"os"

	"github.com/simonhull/constgen/internal/commands"
)

func main() {
	rootCmd := commands.NewApp()

	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(err)
		os.Exit(1)
	}
}
