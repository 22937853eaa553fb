package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsklabs/labelsort/internal/api"
	"github.com/jsklabs/labelsort/internal/shiprocket"
	"github.com/jsklabs/labelsort/internal/svcctx"
)

// OrdersEndpoint handles GET /api/shiprocket/orders.
type OrdersEndpoint struct{}

var _ api.Endpoint = (*OrdersEndpoint)(nil)

func (e *OrdersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/shiprocket/orders", e.handler
}

func (e *OrdersEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	List Shiprocket orders
//	@Tags		shiprocket
//	@Produce	json
//	@Param		status		query		string	false	"Filter by order status (e.g. NEW, READY TO SHIP)"
//	@Param		page		query		int		false	"Page number"
//	@Param		per_page	query		int		false	"Results per page"
//	@Success	200	{object}	shiprocket.OrdersPage
//	@Failure	502	{object}	ErrorResponse
//	@Router		/api/shiprocket/orders [get]
func (e *OrdersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	client := svcctx.ShiprocketFrom(r.Context())

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	orders, err := client.Orders(r.Context(), q.Get("status"), page, perPage)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("shiprocket: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (e *OrdersEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		status  string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List Shiprocket orders via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			q := url.Values{}
			if status != "" {
				q.Set("status", status)
			}
			q.Set("page", strconv.Itoa(page))
			q.Set("per_page", strconv.Itoa(perPage))
			path := "/api/shiprocket/orders?" + q.Encode()
			var resp shiprocket.OrdersPage
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by order status")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 50, "results per page")
	return cmd
}

// ShipRequest is the body for POST /api/shiprocket/ship.
type ShipRequest struct {
	ShipmentIDs []int64 `json:"shipment_ids"`
	CourierID   int64   `json:"courier_id,omitempty"`
}

// ShipEndpoint handles POST /api/shiprocket/ship.
type ShipEndpoint struct{}

var _ api.Endpoint = (*ShipEndpoint)(nil)

func (e *ShipEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/shiprocket/ship", e.handler
}

func (e *ShipEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Assign AWBs to shipments
//	@Tags		shiprocket
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ShipRequest	true	"Shipments to assign"
//	@Success	200	{object}	shiprocket.BulkShipResult
//	@Failure	400	{object}	ErrorResponse
//	@Router		/api/shiprocket/ship [post]
func (e *ShipEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	client := svcctx.ShiprocketFrom(r.Context())

	var req ShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.ShipmentIDs) == 0 {
		writeError(w, http.StatusBadRequest, "shipment_ids must not be empty")
		return
	}

	result, err := client.BulkShip(r.Context(), req.ShipmentIDs, req.CourierID)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("shiprocket: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (e *ShipEndpoint) Command(getServerURL func() string) *cobra.Command {
	var courierID int64

	cmd := &cobra.Command{
		Use:   "ship [shipment-id...]",
		Short: "Assign AWBs to shipments via the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseShipmentIDs(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp shiprocket.BulkShipResult
			if err := client.Post(cmd.Context(), "/api/shiprocket/ship", ShipRequest{ShipmentIDs: ids, CourierID: courierID}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}

	cmd.Flags().Int64Var(&courierID, "courier-id", 0, "force a specific courier")
	return cmd
}

// LabelsRequest is the body for POST /api/shiprocket/labels.
type LabelsRequest struct {
	ShipmentIDs []int64 `json:"shipment_ids"`
}

// LabelsEndpoint handles POST /api/shiprocket/labels. It responds with the
// generated label PDF.
type LabelsEndpoint struct{}

var _ api.Endpoint = (*LabelsEndpoint)(nil)

func (e *LabelsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/shiprocket/labels", e.handler
}

func (e *LabelsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Generate and download shipment labels
//	@Tags		shiprocket
//	@Accept		json
//	@Produce	application/pdf
//	@Param		request	body		LabelsRequest	true	"Shipments to label"
//	@Success	200	{file}		binary
//	@Failure	400	{object}	ErrorResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/api/shiprocket/labels [post]
func (e *LabelsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	client := svcctx.ShiprocketFrom(r.Context())

	var req LabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.ShipmentIDs) == 0 {
		writeError(w, http.StatusBadRequest, "shipment_ids must not be empty")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="labels.pdf"`)
	if err := client.DownloadLabels(r.Context(), req.ShipmentIDs, w); err != nil {
		// Headers may already be gone; best effort.
		writeError(w, http.StatusBadGateway, fmt.Sprintf("shiprocket: %v", err))
	}
}

func (e *LabelsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "labels [shipment-id...]",
		Short: "Download shipment labels via the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseShipmentIDs(args)
			if err != nil {
				return err
			}

			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outputPath, err)
			}
			defer out.Close()

			client := api.NewClient(getServerURL())
			if err := client.PostFile(cmd.Context(), "/api/shiprocket/labels", LabelsRequest{ShipmentIDs: ids}, out); err != nil {
				os.Remove(outputPath)
				return err
			}
			fmt.Printf("Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "labels.pdf", "output PDF path")
	return cmd
}

// BalanceResponse is the wallet balance response.
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// BalanceEndpoint handles GET /api/shiprocket/balance.
type BalanceEndpoint struct{}

var _ api.Endpoint = (*BalanceEndpoint)(nil)

func (e *BalanceEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/shiprocket/balance", e.handler
}

func (e *BalanceEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Get Shiprocket wallet balance
//	@Tags		shiprocket
//	@Produce	json
//	@Success	200	{object}	BalanceResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/api/shiprocket/balance [get]
func (e *BalanceEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	client := svcctx.ShiprocketFrom(r.Context())

	balance, err := client.WalletBalance(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("shiprocket: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
}

func (e *BalanceEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Get Shiprocket wallet balance via the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp BalanceResponse
			if err := client.Get(cmd.Context(), "/api/shiprocket/balance", &resp); err != nil {
				return err
			}
			fmt.Printf("Balance: %.2f\n", resp.Balance)
			return nil
		},
	}
}

func parseShipmentIDs(args []string) ([]int64, error) {
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
