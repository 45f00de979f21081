package clients

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// SearchCustomersByPhone looks up customers by a phone-number fragment.
// An empty result is not an error; it means "proceed as a new customer".
func (c *Client) SearchCustomersByPhone(ctx context.Context, phoneFragment string) ([]orders.Customer, error) {
	q := url.Values{}
	q.Set("phoneNumber", phoneFragment)

	var out []orders.Customer
	if err := c.getJSON(ctx, "/api/admin/orders/search-customers", q, &out); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return out, nil
}
