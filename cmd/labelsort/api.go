package main

import (
	"github.com/spf13/cobra"

	"github.com/jsklabs/labelsort/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running labelsort server via HTTP.

These commands require a running server (labelsort serve).
Use --server to specify a custom server URL.

Examples:
  labelsort api health                   # Check server health
  labelsort api sort labels.pdf          # Sort a PDF via the server
  labelsort api shiprocket orders        # List orders via the server`,
}

var apiShiprocketCmd = &cobra.Command{
	Use:   "shiprocket",
	Short: "Shiprocket commands routed through the server",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))

	// Label sorting
	apiCmd.AddCommand((&endpoints.SortLabelsEndpoint{}).Command(getServerURL))

	// Shiprocket as subcommand group
	for _, ep := range endpoints.ShiprocketCommands() {
		apiShiprocketCmd.AddCommand(ep.Command(getServerURL))
	}

	// Swagger spec fetch
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(apiShiprocketCmd)
	rootCmd.AddCommand(apiCmd)
}
