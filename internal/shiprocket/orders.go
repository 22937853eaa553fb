package shiprocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Shipment is one shipment attached to an order.
type Shipment struct {
	ID      int64  `json:"id"`
	Courier string `json:"courier"`
	AWB     string `json:"awb"`
}

// Shipments tolerates the API's habit of returning either a single
// shipment object or a list of them depending on the order.
type Shipments []Shipment

// UnmarshalJSON accepts both a JSON array and a bare object.
func (s *Shipments) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []Shipment
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var single Shipment
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = Shipments{single}
	return nil
}

// Order is a Shiprocket order summary.
type Order struct {
	ID           int64     `json:"id"`
	ChannelOrder string    `json:"channel_order_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Total        string    `json:"total"`
	CreatedAt    string    `json:"created_at"`
	Shipments    Shipments `json:"shipments"`
}

// OrdersPage is one page of an order listing.
type OrdersPage struct {
	Data []Order `json:"data"`
	Meta struct {
		Pagination struct {
			Total       int `json:"total"`
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

// Orders fetches orders filtered by status ("NEW", "READY_TO_SHIP", ...).
// perPage caps at 50 on the API side.
func (c *Client) Orders(ctx context.Context, status string, page, perPage int) (*OrdersPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	q := url.Values{}
	q.Set("filter", strings.ToLower(status))
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var resp OrdersPage
	if err := c.get(ctx, "/orders", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &resp, nil
}

// OrderDetails fetches one order with full detail as returned by the API.
func (c *Client) OrderDetails(ctx context.Context, orderID int64) (map[string]any, error) {
	var resp map[string]any
	if err := c.get(ctx, fmt.Sprintf("/orders/show/%d", orderID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	return resp, nil
}

// ShipmentDetails fetches one shipment, including its AWB when assigned.
func (c *Client) ShipmentDetails(ctx context.Context, shipmentID int64) (map[string]any, error) {
	var resp map[string]any
	if err := c.get(ctx, fmt.Sprintf("/shipments/%d", shipmentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch shipment %d: %w", shipmentID, err)
	}
	return resp, nil
}

// ShipmentIDs flattens the shipment IDs of a list of orders, in order.
func ShipmentIDs(orders []Order) []int64 {
	var ids []int64
	for _, o := range orders {
		for _, s := range o.Shipments {
			if s.ID != 0 {
				ids = append(ids, s.ID)
			}
		}
	}
	return ids
}
