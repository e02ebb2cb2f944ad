// Package cmd implements the CLI commands for the pricing engine server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pricing-engine",
	Short: "Price used vehicles against the market",
	Long: "A service that retrieves comparable market listings for every vehicle " +
		"in the portfolio, derives a competitive sale price and a maximum " +
		"acquisition bid from the dealer's cost stack, and flags buying opportunities.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the root command for doc generation.
func Root() *cobra.Command {
	return rootCmd
}
