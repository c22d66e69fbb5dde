package main

import (
	"os"

	"github.com/spf13/cobra"

	"carsub/internal/interfaces/cli/migrate"
	"carsub/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carsub",
		Short: "Carsub - vehicle subscription contract service",
		Long:  `Carsub manages vehicle subscription contracts: their lifecycle, event history and the surrounding HTTP API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
