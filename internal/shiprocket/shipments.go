package shiprocket

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type assignAWBRequest struct {
	ShipmentID int64 `json:"shipment_id"`
	CourierID  int64 `json:"courier_id,omitempty"`
}

type assignAWBResponse struct {
	AWBAssignStatus int `json:"awb_assign_status"`
	Response        struct {
		Data struct {
			CourierName string `json:"courier_name"`
			AWBCode     string `json:"awb_code"`
		} `json:"data"`
	} `json:"response"`
}

// AssignResult is the outcome of one AWB assignment.
type AssignResult struct {
	ShipmentID int64  `json:"shipment_id"`
	Success    bool   `json:"success"`
	Courier    string `json:"courier,omitempty"`
	AWB        string `json:"awb,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AssignAWB ships one shipment: the platform assigns a courier and AWB.
// courierID 0 lets Shiprocket pick per the account's priority settings.
func (c *Client) AssignAWB(ctx context.Context, shipmentID, courierID int64) (AssignResult, error) {
	req := assignAWBRequest{ShipmentID: shipmentID, CourierID: courierID}

	var resp assignAWBResponse
	if err := c.post(ctx, "/courier/assign/awb", req, &resp, true); err != nil {
		return AssignResult{ShipmentID: shipmentID}, fmt.Errorf("failed to assign AWB for shipment %d: %w", shipmentID, err)
	}

	return AssignResult{
		ShipmentID: shipmentID,
		Success:    resp.AWBAssignStatus == 1,
		Courier:    resp.Response.Data.CourierName,
		AWB:        resp.Response.Data.AWBCode,
	}, nil
}

// BulkShipResult summarizes a BulkShip run.
type BulkShipResult struct {
	Results []AssignResult `json:"results"`
	Shipped int            `json:"shipped"`
	Failed  int            `json:"failed"`
}

// BulkShip assigns AWBs to many shipments sequentially. A fixed delay
// between calls keeps the account under the API rate limit. One
// shipment's failure never aborts the batch; it is recorded and the
// loop continues. courierID 0 lets Shiprocket pick the courier.
func (c *Client) BulkShip(ctx context.Context, shipmentIDs []int64, courierID int64) (*BulkShipResult, error) {
	out := &BulkShipResult{}

	for i, id := range shipmentIDs {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		res, err := c.AssignAWB(ctx, id, courierID)
		if err != nil {
			res = AssignResult{ShipmentID: id, Error: err.Error()}
		}
		out.Results = append(out.Results, res)
		if res.Success {
			out.Shipped++
		} else {
			out.Failed++
			c.logger.Warn("AWB assignment failed", "shipment_id", id, "error", res.Error)
		}

		if c.rateDelay > 0 && i < len(shipmentIDs)-1 {
			c.sleep(c.rateDelay)
		}
	}

	return out, nil
}

// Serviceability lists courier partners able to carry a shipment between
// two postcodes. Passed through as returned by the API.
func (c *Client) Serviceability(ctx context.Context, pickupPostcode, deliveryPostcode string, weightKg float64, cod bool) (map[string]any, error) {
	q := url.Values{}
	q.Set("pickup_postcode", pickupPostcode)
	q.Set("delivery_postcode", deliveryPostcode)
	q.Set("weight", strconv.FormatFloat(weightKg, 'f', -1, 64))
	if cod {
		q.Set("cod", "1")
	} else {
		q.Set("cod", "0")
	}

	var resp map[string]any
	if err := c.get(ctx, "/courier/serviceability", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to check serviceability: %w", err)
	}
	return resp, nil
}

type shipmentIDsRequest struct {
	ShipmentID []int64 `json:"shipment_id"`
}

// Manifest generates a pickup manifest for the given shipments.
func (c *Client) Manifest(ctx context.Context, shipmentIDs []int64) (map[string]any, error) {
	var resp map[string]any
	if err := c.post(ctx, "/manifests/generate", shipmentIDsRequest{ShipmentID: shipmentIDs}, &resp, true); err != nil {
		return nil, fmt.Errorf("failed to generate manifest: %w", err)
	}
	return resp, nil
}

type pickupRequest struct {
	ShipmentID []int64 `json:"shipment_id"`
	PickupDate string  `json:"pickup_date"`
}

// RequestPickup schedules courier pickup for shipped orders. An empty
// pickupDate defaults to tomorrow.
func (c *Client) RequestPickup(ctx context.Context, shipmentIDs []int64, pickupDate string) (map[string]any, error) {
	if pickupDate == "" {
		pickupDate = c.now().AddDate(0, 0, 1).Format("2006-01-02")
	}

	var resp map[string]any
	req := pickupRequest{ShipmentID: shipmentIDs, PickupDate: pickupDate}
	if err := c.post(ctx, "/courier/generate/pickup", req, &resp, true); err != nil {
		return nil, fmt.Errorf("failed to request pickup: %w", err)
	}
	return resp, nil
}

// TrackByAWB returns tracking data for an AWB number.
func (c *Client) TrackByAWB(ctx context.Context, awb string) (map[string]any, error) {
	var resp map[string]any
	if err := c.get(ctx, "/courier/track/awb/"+url.PathEscape(awb), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to track AWB %s: %w", awb, err)
	}
	return resp, nil
}

// TrackByShipment returns tracking data for a shipment ID.
func (c *Client) TrackByShipment(ctx context.Context, shipmentID int64) (map[string]any, error) {
	var resp map[string]any
	if err := c.get(ctx, fmt.Sprintf("/courier/track/shipment/%d", shipmentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to track shipment %d: %w", shipmentID, err)
	}
	return resp, nil
}

// TrackByOrder returns tracking data for every shipment of an order.
func (c *Client) TrackByOrder(ctx context.Context, orderID int64) (map[string]any, error) {
	q := url.Values{}
	q.Set("order_id", strconv.FormatInt(orderID, 10))

	var resp map[string]any
	if err := c.get(ctx, "/courier/track", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to track order %d: %w", orderID, err)
	}
	return resp, nil
}

type cancelRequest struct {
	AWBs []string `json:"awbs"`
}

// CancelShipments cancels shipments by AWB code.
func (c *Client) CancelShipments(ctx context.Context, awbs []string) (map[string]any, error) {
	var resp map[string]any
	if err := c.post(ctx, "/orders/cancel/shipment/awbs", cancelRequest{AWBs: awbs}, &resp, true); err != nil {
		return nil, fmt.Errorf("failed to cancel shipments: %w", err)
	}
	return resp, nil
}
