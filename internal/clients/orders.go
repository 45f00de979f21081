package clients

import (
	"context"
	"fmt"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// CreateManualOrder posts the assembled draft. The server resolves the
// customer by id (or creates one), prices the lines and decrements stock.
func (c *Client) CreateManualOrder(ctx context.Context, req orders.OrderCreateRequest) (*orders.OrderCreateResponse, error) {
	var out orders.OrderCreateResponse
	if err := c.postJSON(ctx, "/api/admin/orders", req, &out); err != nil {
		return nil, fmt.Errorf("create manual order: %w", err)
	}
	return &out, nil
}
