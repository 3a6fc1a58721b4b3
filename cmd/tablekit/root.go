package main

import (
	"github.com/spf13/cobra"
)

// configFile is set by the --config flag.
var configFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablekit",
		Short: "Table state kit demo server",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")

	rootCmd.AddCommand(
		NewServeCommand(),
		NewSeedCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
