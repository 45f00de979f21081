package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// KV is the persistence substrate behind the draft store: string get/set/remove
// by key, best-effort durability. Implemented by redisx.Store, postgres.Store
// and in-memory fakes in tests.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Persisted draft fields. Each is saved independently as a side effect of its
// mutation; there is no cross-field transaction. A crash between two saves can
// leave a logically stale combination, which Load tolerates field by field.
const (
	fieldStep     = "step"
	fieldPhone    = "phone_number"
	fieldCustomer = "selected_customer"
	fieldForm     = "customer_form"
	fieldCart     = "cart_items"
	fieldNote     = "order_note"
)

var draftFields = []string{fieldStep, fieldPhone, fieldCustomer, fieldForm, fieldCart, fieldNote}

// DraftStore mirrors a Draft's durable fields into a KV substrate under keys
// namespaced by the wizard owner.
type DraftStore struct {
	kv    KV
	owner string
}

func NewDraftStore(kv KV, owner string) *DraftStore {
	return &DraftStore{kv: kv, owner: owner}
}

func (s *DraftStore) Owner() string { return s.owner }

func (s *DraftStore) key(field string) string {
	return fmt.Sprintf("wizard:%s:%s", s.owner, field)
}

// Load rebuilds a Draft from storage. Every field is parsed on its own; a
// corrupted value falls back to that field's default and never aborts the
// rest of the load.
func (s *DraftStore) Load(ctx context.Context) Draft {
	d := NewDraft()

	if v, ok := s.get(ctx, fieldStep); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= StepCustomer && n <= StepReview {
			d.Step = n
		}
	}
	if v, ok := s.get(ctx, fieldPhone); ok {
		d.CustomerQuery = v
	}
	if v, ok := s.get(ctx, fieldCustomer); ok {
		var c *orders.Customer
		if err := json.Unmarshal([]byte(v), &c); err == nil {
			d.SelectedCustomer = c
		}
	}
	if v, ok := s.get(ctx, fieldForm); ok {
		var f CustomerForm
		if err := json.Unmarshal([]byte(v), &f); err == nil {
			d.CustomerForm = f
		}
	}
	if v, ok := s.get(ctx, fieldCart); ok {
		var items []orders.CartItem
		if err := json.Unmarshal([]byte(v), &items); err == nil {
			d.CartItems = sanitizeCart(items)
		}
	}
	if v, ok := s.get(ctx, fieldNote); ok {
		d.Note = v
	}

	d.TotalAmount = cartTotal(d.CartItems)
	return d
}

func (s *DraftStore) get(ctx context.Context, field string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, s.key(field))
	if err != nil || !ok {
		return "", false
	}
	return v, true
}

// sanitizeCart drops lines a corrupted store could not be trusted on:
// quantities below one and empty product ids.
func sanitizeCart(items []orders.CartItem) []orders.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (s *DraftStore) SaveStep(ctx context.Context, step int) error {
	return s.kv.Set(ctx, s.key(fieldStep), strconv.Itoa(step))
}

func (s *DraftStore) SavePhone(ctx context.Context, phone string) error {
	return s.kv.Set(ctx, s.key(fieldPhone), phone)
}

func (s *DraftStore) SaveSelectedCustomer(ctx context.Context, c *orders.Customer) error {
	return s.saveJSON(ctx, fieldCustomer, c)
}

func (s *DraftStore) SaveForm(ctx context.Context, f CustomerForm) error {
	return s.saveJSON(ctx, fieldForm, f)
}

func (s *DraftStore) SaveCart(ctx context.Context, items []orders.CartItem) error {
	if items == nil {
		items = []orders.CartItem{}
	}
	return s.saveJSON(ctx, fieldCart, items)
}

func (s *DraftStore) SaveNote(ctx context.Context, note string) error {
	return s.kv.Set(ctx, s.key(fieldNote), note)
}

func (s *DraftStore) saveJSON(ctx context.Context, field string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	return s.kv.Set(ctx, s.key(field), string(b))
}

// Flush writes every durable field at once. Called on wizard shutdown
// so in-flight edits survive a restart.
func (s *DraftStore) Flush(ctx context.Context, d Draft) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	keep(s.SaveStep(ctx, d.Step))
	keep(s.SavePhone(ctx, d.CustomerQuery))
	keep(s.SaveSelectedCustomer(ctx, d.SelectedCustomer))
	keep(s.SaveForm(ctx, d.CustomerForm))
	keep(s.SaveCart(ctx, d.CartItems))
	keep(s.SaveNote(ctx, d.Note))
	return firstErr
}

// Clear removes every draft key. Called exactly once, after a successful
// submission or an explicit start-over.
func (s *DraftStore) Clear(ctx context.Context) error {
	keys := make([]string, len(draftFields))
	for i, f := range draftFields {
		keys[i] = s.key(f)
	}
	return s.kv.Del(ctx, keys...)
}
