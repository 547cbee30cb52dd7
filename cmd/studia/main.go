package main

import (
	"os"

	"github.com/spf13/cobra"

	"studia/internal/interfaces/cli/migrate"
	"studia/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "studia",
		Short: "Studia - a course marketplace",
		Long:  `Studia is a two-sided marketplace for video and PDF courses with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
