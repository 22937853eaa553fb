package shiprocket

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsklabs/labelsort/internal/labels"
)

// QuickShipSummary reports a QuickShipNewOrders run.
type QuickShipSummary struct {
	TotalOrders int            `json:"total_orders"`
	Shipped     int            `json:"shipped"`
	Failed      int            `json:"failed"`
	Results     []AssignResult `json:"results,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// QuickShipNewOrders ships every NEW order with automatic courier
// assignment. Per-order failures are collected, not fatal.
func (c *Client) QuickShipNewOrders(ctx context.Context, limit int) (*QuickShipSummary, error) {
	if limit < 1 {
		limit = 50
	}

	page, err := c.Orders(ctx, "NEW", 1, limit)
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return &QuickShipSummary{Message: "no new orders to ship"}, nil
	}

	ids := ShipmentIDs(page.Data)
	if len(ids) == 0 {
		return &QuickShipSummary{TotalOrders: len(page.Data), Message: "no shipments found"}, nil
	}

	res, err := c.BulkShip(ctx, ids, 0)
	if err != nil {
		return nil, err
	}

	return &QuickShipSummary{
		TotalOrders: len(page.Data),
		Shipped:     res.Shipped,
		Failed:      res.Failed,
		Results:     res.Results,
	}, nil
}

// LabelFile describes one downloaded label PDF.
type LabelFile struct {
	Courier string `json:"courier"`
	Count   int    `json:"count"`
	Path    string `json:"file"`
}

// DownloadReadyLabels downloads label PDFs for all READY_TO_SHIP orders,
// one file per courier, named {date}_{courier}_labels.pdf under outDir.
// The output of this helper is exactly what the sorting pipeline takes as
// input. A courier whose download fails is skipped with a warning; the
// remaining couriers still produce files.
func (c *Client) DownloadReadyLabels(ctx context.Context, outDir string) ([]LabelFile, error) {
	page, err := c.Orders(ctx, "READY_TO_SHIP", 1, 50)
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create labels directory: %w", err)
	}

	// Group shipment IDs by courier so each output PDF is courier-pure.
	byCourier := make(map[string][]int64)
	var courierOrder []string
	for _, o := range page.Data {
		for _, s := range o.Shipments {
			if s.ID == 0 {
				continue
			}
			courier := s.Courier
			if courier == "" {
				courier = labels.UnknownField
			}
			if _, seen := byCourier[courier]; !seen {
				courierOrder = append(courierOrder, courier)
			}
			byCourier[courier] = append(byCourier[courier], s.ID)
		}
	}

	date := c.now().Format("2006-01-02")
	var files []LabelFile
	for _, courier := range courierOrder {
		ids := byCourier[courier]
		name := fmt.Sprintf("%s_%s_labels.pdf", date, labels.NormalizeCourier(courier))
		path := filepath.Join(outDir, name)

		f, err := os.Create(path)
		if err != nil {
			return files, fmt.Errorf("failed to create %s: %w", name, err)
		}
		err = c.DownloadLabels(ctx, ids, f)
		f.Close()
		if err != nil {
			os.Remove(path)
			c.logger.Warn("label download failed", "courier", courier, "error", err)
			continue
		}

		files = append(files, LabelFile{Courier: courier, Count: len(ids), Path: path})
	}

	return files, nil
}
