package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// SetCustomerQuery updates the phone-number search term. No side effect
// beyond mirroring it to storage.
func (w *Wizard) SetCustomerQuery(ctx context.Context, phone string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.CustomerQuery = phone
	w.persist(w.deps.Store.SavePhone(ctx, phone))
}

// SearchCustomers queries the directory with the current phone fragment.
// Queries under 3 characters are rejected before any network call. An empty
// result clears the selection and resets the form to just the phone number,
// signalling "no match, proceed as a new customer". A failed call leaves the
// candidate list untouched.
func (w *Wizard) SearchCustomers(ctx context.Context) error {
	w.mu.Lock()
	q := strings.TrimSpace(w.draft.CustomerQuery)
	if len(q) < 3 {
		w.mu.Unlock()
		return ErrCustomerQueryTooShort
	}
	w.custSeq++
	seq := w.custSeq
	w.loading = true
	w.mu.Unlock()

	res, err := w.deps.Directory.SearchCustomersByPhone(ctx, q)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.custSeq {
		// A newer search superseded this one; drop the response either way.
		return nil
	}
	w.loading = false
	if err != nil {
		w.deps.Log.Error("customer search failed", "query", q, "err", err)
		return fmt.Errorf("customer search: %w", err)
	}

	w.draft.CustomerCandidates = res
	if len(res) == 0 {
		w.draft.SelectedCustomer = nil
		w.draft.CustomerForm = CustomerForm{PhoneNumber: q}
		w.persist(w.deps.Store.SaveSelectedCustomer(ctx, nil))
		w.persist(w.deps.Store.SaveForm(ctx, w.draft.CustomerForm))
	}
	return nil
}

// SelectCustomer marks the candidate as chosen and copies its fields into the
// form. The operator may still edit the form afterwards; those edits win at
// submission time.
func (w *Wizard) SelectCustomer(ctx context.Context, c orders.Customer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	sel := c
	w.draft.SelectedCustomer = &sel
	w.draft.CustomerForm = CustomerForm{
		ID:          c.ID,
		FullName:    c.FullName,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
		City:        c.City,
		Country:     c.Country,
	}
	w.persist(w.deps.Store.SaveSelectedCustomer(ctx, &sel))
	w.persist(w.deps.Store.SaveForm(ctx, w.draft.CustomerForm))
}

// SetCustomerForm replaces the editable customer fields.
func (w *Wizard) SetCustomerForm(ctx context.Context, f CustomerForm) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.CustomerForm = f
	w.persist(w.deps.Store.SaveForm(ctx, f))
}

// validateCustomerLocked is the step-1 gate: full name, phone, address, city
// and country are required, email is optional. Per-field detail is a
// presentation concern; the gate reports a single aggregate error.
func (w *Wizard) validateCustomerLocked() error {
	f := w.draft.CustomerForm
	for _, v := range []string{f.FullName, f.PhoneNumber, f.Address, f.City, f.Country} {
		if strings.TrimSpace(v) == "" {
			return ErrCustomerIncomplete
		}
	}
	return nil
}
