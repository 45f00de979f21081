package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// Submit assembles the create-order request from the draft and calls the
// order service. Preconditions are checked locally first; each failure aborts
// before any network call. While a submission is in flight a second Submit is
// refused at this boundary, not merely disabled in the UI.
//
// On success the stored draft is cleared, the in-memory draft resets, the
// event sink and navigator are notified. On failure the draft survives in
// memory and storage so the operator can retry without re-entering anything.
func (w *Wizard) Submit(ctx context.Context) (*orders.OrderCreateResponse, error) {
	w.mu.Lock()
	if w.creatingOrder {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	req, err := w.buildRequestLocked()
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.creatingOrder = true
	w.draft.Submission = SubmissionInFlight
	w.draft.SubmissionError = ""
	w.mu.Unlock()

	resp, err := w.deps.Orders.CreateManualOrder(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.creatingOrder = false
	if err != nil {
		w.draft.Submission = SubmissionFailed
		w.draft.SubmissionError = err.Error()
		w.deps.Log.Error("order submission failed", "owner", w.deps.Store.Owner(), "err", err)
		return nil, fmt.Errorf("submit order: %w", err)
	}

	w.draft.Submission = SubmissionSucceeded
	w.draft.OrderResponse = resp
	if err := w.deps.Store.Clear(ctx); err != nil {
		w.deps.Log.Warn("draft clear failed after submission", "owner", w.deps.Store.Owner(), "err", err)
	}
	w.resetDraftLocked()

	if w.deps.Events != nil {
		w.deps.Events.OrderSubmitted(ctx, w.deps.Store.Owner(), resp)
	}
	if w.deps.Nav != nil {
		w.deps.Nav.OrderCreated(resp)
	}
	w.deps.Log.Info("manual order created",
		"owner", w.deps.Store.Owner(),
		"order_number", resp.OrderNumber,
		"total", resp.TotalAmount,
	)
	return resp, nil
}

// buildRequestLocked resolves the customer identity (edited form id first,
// selected customer second) and maps the cart to the wire shape.
func (w *Wizard) buildRequestLocked() (orders.OrderCreateRequest, error) {
	form := w.draft.CustomerForm

	customerID := form.ID
	if customerID == "" && w.draft.SelectedCustomer != nil {
		customerID = w.draft.SelectedCustomer.ID
	}
	if customerID == "" && w.draft.SelectedCustomer == nil {
		return orders.OrderCreateRequest{}, ErrNoCustomer
	}
	if len(w.draft.CartItems) == 0 {
		return orders.OrderCreateRequest{}, ErrNoProducts
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		return orders.OrderCreateRequest{}, ErrPhoneRequired
	}
	if strings.TrimSpace(form.Address) == "" {
		return orders.OrderCreateRequest{}, ErrAddressRequired
	}

	items := make([]orders.OrderItemInput, 0, len(w.draft.CartItems))
	for _, it := range w.draft.CartItems {
		items = append(items, orders.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return orders.OrderCreateRequest{
		CustomerID:      customerID,
		PhoneNumber:     strings.TrimSpace(form.PhoneNumber),
		ShippingAddress: strings.TrimSpace(form.Address),
		Note:            w.draft.Note,
		OrderItems:      items,
	}, nil
}
