package clients

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

func (c *Client) SearchProducts(ctx context.Context, term string, page, pageSize int, inStockOnly bool) (orders.ProductPage, error) {
	q := url.Values{}
	q.Set("searchTerm", term)
	q.Set("pageNumber", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("inStock", strconv.FormatBool(inStockOnly))

	var out orders.ProductPage
	if err := c.getJSON(ctx, "/api/products/paged", q, &out); err != nil {
		return orders.ProductPage{}, fmt.Errorf("search products: %w", err)
	}
	return out, nil
}
