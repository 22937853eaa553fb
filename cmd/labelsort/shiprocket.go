package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsklabs/labelsort/internal/api"
	"github.com/jsklabs/labelsort/internal/config"
	"github.com/jsklabs/labelsort/internal/home"
	"github.com/jsklabs/labelsort/internal/shiprocket"
)

var shiprocketCmd = &cobra.Command{
	Use:   "shiprocket",
	Short: "Talk to the Shiprocket API directly",
	Long: `Shiprocket commands call the Shiprocket API directly, without a
running labelsort server. Credentials come from the config file or the
SHIPROCKET_EMAIL and SHIPROCKET_PASSWORD environment variables.

Examples:
  labelsort shiprocket orders --status NEW
  labelsort shiprocket ship 101 102 103
  labelsort shiprocket labels 101 102 -o labels.pdf
  labelsort shiprocket quickship
  labelsort shiprocket balance`,
}

// newShiprocketClient builds a client from the resolved config.
func newShiprocketClient() (*shiprocket.Client, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cfgMgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	return shiprocket.New(cfgMgr.Get().ShiprocketConfig(logger))
}

// resolveLabelsDir picks the label download directory: the flag wins,
// otherwise the home labels directory (created on demand).
func resolveLabelsDir(flagValue, homePath string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	h, err := home.New(homePath)
	if err != nil {
		return "", err
	}
	if err := h.EnsureExists(); err != nil {
		return "", err
	}
	return h.LabelsPath(), nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shipment id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var srOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		orders, err := client.Orders(cmd.Context(), status, page, perPage)
		if err != nil {
			return err
		}
		return api.Output(orders)
	},
}

var srShipCmd = &cobra.Command{
	Use:   "ship [shipment-id...]",
	Short: "Assign AWBs to shipments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courierID, _ := cmd.Flags().GetInt64("courier-id")

		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		result, err := client.BulkShip(cmd.Context(), ids, courierID)
		if err != nil {
			return err
		}
		fmt.Printf("Shipped %d, failed %d\n", result.Shipped, result.Failed)
		return api.Output(result)
	},
}

var srLabelsCmd = &cobra.Command{
	Use:   "labels [shipment-id...]",
	Short: "Generate and download shipment labels",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")

		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		client, err := newShiprocketClient()
		if err != nil {
			return err
		}

		out, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outputPath, err)
		}
		defer out.Close()

		if err := client.DownloadLabels(cmd.Context(), ids, out); err != nil {
			os.Remove(outputPath)
			return err
		}
		fmt.Printf("Wrote %s\n", outputPath)
		return nil
	},
}

var srBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show wallet balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		balance, err := client.WalletBalance(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Balance: %.2f\n", balance)
		return nil
	},
}

var srTrackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track a shipment by AWB, shipment ID or order ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		awb, _ := cmd.Flags().GetString("awb")
		shipmentID, _ := cmd.Flags().GetInt64("shipment")
		orderID, _ := cmd.Flags().GetInt64("order")

		client, err := newShiprocketClient()
		if err != nil {
			return err
		}

		var result map[string]any
		switch {
		case awb != "":
			result, err = client.TrackByAWB(cmd.Context(), awb)
		case shipmentID != 0:
			result, err = client.TrackByShipment(cmd.Context(), shipmentID)
		case orderID != 0:
			result, err = client.TrackByOrder(cmd.Context(), orderID)
		default:
			return fmt.Errorf("one of --awb, --shipment or --order is required")
		}
		if err != nil {
			return err
		}
		return api.Output(result)
	},
}

var srPickupCmd = &cobra.Command{
	Use:   "pickup [shipment-id...]",
	Short: "Request pickup for shipments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")

		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		result, err := client.RequestPickup(cmd.Context(), ids, date)
		if err != nil {
			return err
		}
		return api.Output(result)
	},
}

var srManifestCmd = &cobra.Command{
	Use:   "manifest [shipment-id...]",
	Short: "Generate a manifest for shipments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		result, err := client.Manifest(cmd.Context(), ids)
		if err != nil {
			return err
		}
		return api.Output(result)
	},
}

var srCancelCmd = &cobra.Command{
	Use:   "cancel [awb...]",
	Short: "Cancel shipments by AWB",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		result, err := client.CancelShipments(cmd.Context(), args)
		if err != nil {
			return err
		}
		return api.Output(result)
	},
}

var srServiceabilityCmd = &cobra.Command{
	Use:   "serviceability",
	Short: "Check courier serviceability between two postcodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		pickup, _ := cmd.Flags().GetString("pickup")
		delivery, _ := cmd.Flags().GetString("delivery")
		weight, _ := cmd.Flags().GetFloat64("weight")
		cod, _ := cmd.Flags().GetBool("cod")

		if pickup == "" || delivery == "" {
			return fmt.Errorf("--pickup and --delivery are required")
		}
		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		result, err := client.Serviceability(cmd.Context(), pickup, delivery, weight, cod)
		if err != nil {
			return err
		}
		return api.Output(result)
	},
}

var srQuickshipCmd = &cobra.Command{
	Use:   "quickship",
	Short: "Assign AWBs to all NEW orders",
	Long: `Quickship fetches all orders with status NEW and assigns an AWB to
each of their shipments, letting Shiprocket pick the courier.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		summary, err := client.QuickShipNewOrders(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return api.Output(summary)
	},
}

var srDownloadLabelsCmd = &cobra.Command{
	Use:   "download-labels",
	Short: "Download labels for all READY TO SHIP orders, one PDF per courier",
	RunE: func(cmd *cobra.Command, args []string) error {
		flagDir, _ := cmd.Flags().GetString("output-dir")
		outDir, err := resolveLabelsDir(flagDir, homeDir)
		if err != nil {
			return err
		}

		client, err := newShiprocketClient()
		if err != nil {
			return err
		}
		files, err := client.DownloadReadyLabels(cmd.Context(), outDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("  %s (%d shipments)\n", f.Path, f.Count)
		}
		return nil
	},
}

func init() {
	srOrdersCmd.Flags().String("status", "", "filter by order status")
	srOrdersCmd.Flags().Int("page", 1, "page number")
	srOrdersCmd.Flags().Int("per-page", 50, "results per page")

	srShipCmd.Flags().Int64("courier-id", 0, "force a specific courier")

	srLabelsCmd.Flags().StringP("output", "o", "labels.pdf", "output PDF path")

	srTrackCmd.Flags().String("awb", "", "AWB code to track")
	srTrackCmd.Flags().Int64("shipment", 0, "shipment ID to track")
	srTrackCmd.Flags().Int64("order", 0, "order ID to track")

	srPickupCmd.Flags().String("date", "", "pickup date YYYY-MM-DD (default: tomorrow)")

	srServiceabilityCmd.Flags().String("pickup", "", "pickup postcode")
	srServiceabilityCmd.Flags().String("delivery", "", "delivery postcode")
	srServiceabilityCmd.Flags().Float64("weight", 0.5, "package weight in kg")
	srServiceabilityCmd.Flags().Bool("cod", false, "cash on delivery")

	srQuickshipCmd.Flags().Int("limit", 0, "max orders to ship (0: no limit)")

	srDownloadLabelsCmd.Flags().StringP("output-dir", "o", "", "directory for label PDFs (default: ~/.labelsort/labels)")

	shiprocketCmd.AddCommand(
		srOrdersCmd,
		srShipCmd,
		srLabelsCmd,
		srBalanceCmd,
		srTrackCmd,
		srPickupCmd,
		srManifestCmd,
		srCancelCmd,
		srServiceabilityCmd,
		srQuickshipCmd,
		srDownloadLabelsCmd,
	)
	rootCmd.AddCommand(shiprocketCmd)
}
