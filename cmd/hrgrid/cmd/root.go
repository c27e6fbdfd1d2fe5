package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	addr       string
	dsn        string
)

var rootCmd = &cobra.Command{
	Use:   "hrgrid",
	Short: "HR employee records server",
	Long:  `hrgrid serves the filterable employee listing API with advanced filter conditions, scoped search, and saved view preferences.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "sqlite DSN (overrides config)")
}

func Execute() error {
	return rootCmd.Execute()
}
