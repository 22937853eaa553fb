package shiprocket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// errLabelNotReady signals that the platform accepted the request but has
// not finished rendering the label PDF yet.
var errLabelNotReady = errors.New("label not ready")

type labelResponse struct {
	LabelCreated int    `json:"label_created"`
	LabelURL     string `json:"label_url"`
}

// labelPollDelay is the pause between label generation polls.
var labelPollDelay = 2 * time.Second

// LabelURL requests label generation for up to 50 shipments and returns
// the URL of the combined label PDF. Generation is asynchronous on the
// platform, so the call polls until the URL is populated.
func (c *Client) LabelURL(ctx context.Context, shipmentIDs []int64) (string, error) {
	if len(shipmentIDs) == 0 {
		return "", errors.New("no shipment IDs provided")
	}

	var labelURL string
	err := retry.Do(
		func() error {
			var resp labelResponse
			if err := c.post(ctx, "/courier/generate/label", shipmentIDsRequest{ShipmentID: shipmentIDs}, &resp, true); err != nil {
				return retry.Unrecoverable(err)
			}
			if resp.LabelURL == "" {
				return errLabelNotReady
			}
			labelURL = resp.LabelURL
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(labelPollDelay),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate label: %w", err)
	}
	return labelURL, nil
}

// DownloadLabels generates labels for the given shipments and streams the
// PDF bytes to w.
func (c *Client) DownloadLabels(ctx context.Context, shipmentIDs []int64, w io.Writer) error {
	labelURL, err := c.LabelURL(ctx, shipmentIDs)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, labelURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("label download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("label download failed: status %d", resp.StatusCode)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to save label PDF: %w", err)
	}
	return nil
}
