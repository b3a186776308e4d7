// Package cmd implements the gardensense command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "gardensense",
	Short: "Garden sensor ingestion and alerting service",
	Long: `gardensense ingests IoT sensor readings, persists them as a time
series, evaluates them against per-user thresholds to raise alerts, and
serves dashboard aggregations.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./gardensense.yaml)")
	rootCmd.AddCommand(serveCmd)
}
