// Package cmd implements the pce CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/jviciana84/prod-sub002/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "pce",
		Short: "CLI client for the vehicle pricing engine",
		Long: "pce is a command-line client for the pricing engine API.\n" +
			"It lets you inspect and change the pricing configuration, trigger\n" +
			"recomputes, browse valuations and opportunities, and quote vehicles.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.pce.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(recomputeCmd())
	rootCmd.AddCommand(valuationsCmd())
	rootCmd.AddCommand(portfolioCmd())
	rootCmd.AddCommand(opportunitiesCmd())
	rootCmd.AddCommand(competitorsCmd())
	rootCmd.AddCommand(quoteCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pce")
	}

	viper.SetEnvPrefix("PCE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
