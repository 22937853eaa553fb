package shiprocket

import (
	"context"
	"fmt"
	"strconv"
)

type walletResponse struct {
	Data struct {
		// The API has been observed returning both a number and a
		// numeric string here.
		BalanceAmount any `json:"balance_amount"`
	} `json:"data"`
}

// WalletBalance returns the account's current wallet balance.
func (c *Client) WalletBalance(ctx context.Context) (float64, error) {
	var resp walletResponse
	if err := c.get(ctx, "/account/details/wallet-balance", nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch wallet balance: %w", err)
	}

	switch v := resp.Data.BalanceAmount.(type) {
	case float64:
		return v, nil
	case string:
		balance, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("unexpected balance value %q: %w", v, err)
		}
		return balance, nil
	default:
		return 0, fmt.Errorf("unexpected balance value %v", v)
	}
}
