package main

import (
	"github.com/spf13/cobra"

	"github.com/jsklabs/labelsort/internal/api"
	"github.com/jsklabs/labelsort/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "labelsort",
	Short: "Sort shipping label PDFs by date, courier and SKU",
	Long: `Labelsort splits multi-page shipping label PDFs into per-group files.

Each page is scanned for courier name, SKU and invoice date, and pages
that share all three are collected into a single output PDF named
{date}_{courier}_{sku}.pdf. It also wraps the Shiprocket API for
assigning AWBs, generating labels and checking wallet balance.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ~/.labelsort/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "labelsort home directory (default: ~/.labelsort)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
