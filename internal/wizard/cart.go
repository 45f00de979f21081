package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// SetProductQuery updates the catalog search term. Transient, not persisted.
func (w *Wizard) SetProductQuery(term string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.ProductQuery = term
}

// SearchProducts queries the catalog with the current term. Terms under 2
// characters are rejected before any network call. A failed call leaves the
// current candidates and pagination untouched.
func (w *Wizard) SearchProducts(ctx context.Context, page, pageSize int) error {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	w.mu.Lock()
	term := strings.TrimSpace(w.draft.ProductQuery)
	if len(term) < 2 {
		w.mu.Unlock()
		return ErrProductQueryTooShort
	}
	w.prodSeq++
	seq := w.prodSeq
	w.loadingProducts = true
	w.mu.Unlock()

	res, err := w.deps.Catalog.SearchProducts(ctx, term, page, pageSize, true)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.prodSeq {
		return nil // superseded by a newer search
	}
	w.loadingProducts = false
	if err != nil {
		w.deps.Log.Error("product search failed", "term", term, "err", err)
		return fmt.Errorf("product search: %w", err)
	}

	w.draft.ProductCandidates = res.Items
	w.draft.TotalCount = res.TotalCount
	w.draft.Page = page
	w.draft.PageSize = pageSize
	return nil
}

// AddProduct puts a product in the cart. Adding a product that is already a
// line item increments its quantity instead of duplicating the line.
func (w *Wizard) AddProduct(ctx context.Context, p orders.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.draft.CartItems {
		if w.draft.CartItems[i].ProductID == p.ID {
			w.draft.CartItems[i].Quantity++
			w.cartChangedLocked(ctx)
			return
		}
	}

	discounted := p.DiscountPrice
	if discounted <= 0 {
		discounted = p.Price
	}
	item := orders.CartItem{
		ProductID:           p.ID,
		ProductName:         p.Name,
		UnitPrice:           p.Price,
		DiscountedUnitPrice: discounted,
		Quantity:            1,
	}
	if len(p.ImageURLs) > 0 {
		item.ImageURL = p.ImageURLs[0]
	}
	w.draft.CartItems = append(w.draft.CartItems, item)
	w.cartChangedLocked(ctx)
}

// UpdateQuantity sets a line item's quantity exactly. A quantity of zero or
// below removes the line; quantities below one are never stored.
func (w *Wizard) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		w.RemoveProduct(ctx, productID)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.draft.CartItems {
		if w.draft.CartItems[i].ProductID == productID {
			w.draft.CartItems[i].Quantity = quantity
			w.cartChangedLocked(ctx)
			return
		}
	}
}

// RemoveProduct deletes the line item; no-op when absent.
func (w *Wizard) RemoveProduct(ctx context.Context, productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := w.draft.CartItems
	for i := range items {
		if items[i].ProductID == productID {
			w.draft.CartItems = append(items[:i:i], items[i+1:]...)
			w.cartChangedLocked(ctx)
			return
		}
	}
}

// cartChangedLocked recomputes the projected total and mirrors the cart.
// TotalAmount is never written anywhere else.
func (w *Wizard) cartChangedLocked(ctx context.Context) {
	w.draft.TotalAmount = cartTotal(w.draft.CartItems)
	w.persist(w.deps.Store.SaveCart(ctx, w.draft.CartItems))
}
