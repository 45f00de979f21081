package httpx

import (
	"log/slog"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// Navigator is the navigation collaborator for the REST facade. The admin UI
// follows the redirect returned by the submit endpoint; this side records the
// confirmation handoff so the flow is visible in the logs.
type Navigator struct {
	Log *slog.Logger
}

func (n *Navigator) OrderCreated(resp *orders.OrderCreateResponse) {
	n.Log.Info("order confirmation ready",
		"route", "/orders/success/"+resp.ID,
		"order_number", resp.OrderNumber,
	)
}
