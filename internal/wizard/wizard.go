package wizard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// CustomerDirectory searches customers by a phone-number fragment.
type CustomerDirectory interface {
	SearchCustomersByPhone(ctx context.Context, phoneFragment string) ([]orders.Customer, error)
}

// ProductCatalog searches the in-stock catalog with pagination.
type ProductCatalog interface {
	SearchProducts(ctx context.Context, term string, page, pageSize int, inStockOnly bool) (orders.ProductPage, error)
}

// OrderService creates the manual order from the assembled draft.
type OrderService interface {
	CreateManualOrder(ctx context.Context, req orders.OrderCreateRequest) (*orders.OrderCreateResponse, error)
}

// EventSink receives a notification after a confirmed submission. Optional.
type EventSink interface {
	OrderSubmitted(ctx context.Context, owner string, resp *orders.OrderCreateResponse)
}

// Navigator routes the operator to the confirmation view. Optional.
type Navigator interface {
	OrderCreated(resp *orders.OrderCreateResponse)
}

type Deps struct {
	Store     *DraftStore
	Directory CustomerDirectory
	Catalog   ProductCatalog
	Orders    OrderService
	Events    EventSink
	Nav       Navigator
	Log       *slog.Logger
}

// Wizard owns the Draft and coordinates the customer and cart sub-states
// through the three-step flow. All methods are safe for concurrent use; the
// draft is only ever read or written under w.mu.
type Wizard struct {
	deps Deps

	mu    sync.Mutex
	draft Draft

	// Busy flags, one per sub-state.
	loading         bool // customer search
	loadingProducts bool // product search
	creatingOrder   bool // submission; hard gate, not cosmetic

	// Request sequence numbers for stale-response suppression: a search
	// response is applied only while its sequence is still the latest.
	custSeq uint64
	prodSeq uint64
}

// New restores the draft from the store (or starts fresh) and returns a ready
// wizard.
func New(ctx context.Context, deps Deps) *Wizard {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Wizard{
		deps:  deps,
		draft: deps.Store.Load(ctx),
	}
}

// Snapshot is a read-only copy of the wizard state for the presentation layer.
type Snapshot struct {
	Draft
	Loading         bool `json:"loading"`
	LoadingProducts bool `json:"loadingProducts"`
	CreatingOrder   bool `json:"creatingOrder"`
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Draft:           w.cloneDraftLocked(),
		Loading:         w.loading,
		LoadingProducts: w.loadingProducts,
		CreatingOrder:   w.creatingOrder,
	}
}

func (w *Wizard) cloneDraftLocked() Draft {
	d := w.draft
	d.CustomerCandidates = append([]orders.Customer(nil), w.draft.CustomerCandidates...)
	d.ProductCandidates = append([]orders.Product(nil), w.draft.ProductCandidates...)
	d.CartItems = append([]orders.CartItem(nil), w.draft.CartItems...)
	if w.draft.SelectedCustomer != nil {
		c := *w.draft.SelectedCustomer
		d.SelectedCustomer = &c
	}
	return d
}

// Next advances one step if the current step's gate passes. At the review
// step there is nothing to advance to; submission is the only way forward.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextLocked(ctx)
}

func (w *Wizard) nextLocked(ctx context.Context) error {
	switch w.draft.Step {
	case StepCustomer:
		if err := w.validateCustomerLocked(); err != nil {
			return err
		}
		w.setStepLocked(ctx, StepProducts)
	case StepProducts:
		if len(w.draft.CartItems) == 0 {
			return ErrEmptyCart
		}
		w.setStepLocked(ctx, StepReview)
	}
	return nil
}

// Back navigates one step backward unconditionally.
func (w *Wizard) Back(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft.Step > StepCustomer {
		w.setStepLocked(ctx, w.draft.Step-1)
	}
	return nil
}

// GoTo jumps to a step. Backward jumps are unconditional; forward jumps pass
// through every intermediate gate, so skipping an unmet gate is impossible.
func (w *Wizard) GoTo(ctx context.Context, step int) error {
	if step < StepCustomer || step > StepReview {
		return ErrInvalidStep
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if step <= w.draft.Step {
		w.setStepLocked(ctx, step)
		return nil
	}
	for w.draft.Step < step {
		if err := w.nextLocked(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *Wizard) setStepLocked(ctx context.Context, step int) {
	w.draft.Step = step
	w.persist(w.deps.Store.SaveStep(ctx, step))
}

// SetNote updates the free-text order note.
func (w *Wizard) SetNote(ctx context.Context, note string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Note = note
	w.persist(w.deps.Store.SaveNote(ctx, note))
}

// Reset is the explicit start-over: stored draft erased, in-memory state back
// to defaults.
func (w *Wizard) Reset(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.deps.Store.Clear(ctx); err != nil {
		return err
	}
	w.resetDraftLocked()
	return nil
}

func (w *Wizard) resetDraftLocked() {
	resp := w.draft.OrderResponse
	sub := w.draft.Submission
	w.draft = NewDraft()
	// Keep the last submission outcome visible after the reset so the
	// confirmation view can still render it.
	w.draft.OrderResponse = resp
	w.draft.Submission = sub
}

// Close flushes every durable field synchronously. Called on teardown so
// pending edits are not lost with the in-memory state.
func (w *Wizard) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.deps.Store.Flush(ctx, w.draft)
}

// persist logs and otherwise swallows store write failures: persistence is a
// best-effort mirror, never a reason to fail the user action itself.
func (w *Wizard) persist(err error) {
	if err != nil {
		w.deps.Log.Warn("draft save failed", "owner", w.deps.Store.Owner(), "err", err)
	}
}
