package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vanloistore/backoffice-wizard/internal/metrics"
	"github.com/vanloistore/backoffice-wizard/internal/orders"
	"github.com/vanloistore/backoffice-wizard/internal/wizard"
)

// ownerHeader identifies the operator driving a wizard. The admin UI sends
// the authenticated user's id; a missing header falls back to one shared
// wizard, matching the single-browser semantics of the old dashboard.
const ownerHeader = "X-Wizard-Owner"

// WizardHandler is the REST facade over the wizard: one endpoint per
// operation, no state of its own.
type WizardHandler struct {
	Manager *wizard.Manager
	Metrics *metrics.WizardMetrics
}

func (h *WizardHandler) Register(r *chi.Mux) {
	r.Route("/wizard", func(r chi.Router) {
		r.Get("/", h.snapshot)
		r.Post("/reset", h.reset)

		r.Put("/customer/query", h.setCustomerQuery)
		r.Post("/customer/search", h.searchCustomers)
		r.Post("/customer/select", h.selectCustomer)
		r.Put("/customer/form", h.setCustomerForm)

		r.Put("/products/query", h.setProductQuery)
		r.Post("/products/search", h.searchProducts)

		r.Post("/cart/items", h.addProduct)
		r.Put("/cart/items/{productID}", h.updateQuantity)
		r.Delete("/cart/items/{productID}", h.removeProduct)

		r.Put("/note", h.setNote)
		r.Post("/next", h.next)
		r.Post("/back", h.back)
		r.Post("/step", h.goTo)
		r.Post("/submit", h.submit)
	})
}

func (h *WizardHandler) wizard(r *http.Request) *wizard.Wizard {
	owner := r.Header.Get(ownerHeader)
	if owner == "" {
		owner = "default"
	}
	return h.Manager.Get(r.Context(), owner)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps wizard errors onto HTTP statuses: local validation is the
// caller's fault, an in-flight submission is a conflict, anything else is an
// upstream failure the operator should retry.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case wizard.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, wizard.ErrSubmitInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "the operation failed, please try again",
		})
	}
}

func (h *WizardHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.wizard(r).Snapshot())
}

func (h *WizardHandler) reset(w http.ResponseWriter, r *http.Request) {
	wiz := h.wizard(r)
	if err := wiz.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) setCustomerQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	wiz := h.wizard(r)
	wiz.SetCustomerQuery(r.Context(), body.PhoneNumber)
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) searchCustomers(w http.ResponseWriter, r *http.Request) {
	wiz := h.wizard(r)
	h.Metrics.CustomerSearches.Inc()
	if err := wiz.SearchCustomers(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) selectCustomer(w http.ResponseWriter, r *http.Request) {
	var c orders.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	wiz := h.wizard(r)
	wiz.SelectCustomer(r.Context(), c)
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) setCustomerForm(w http.ResponseWriter, r *http.Request) {
	var f wizard.CustomerForm
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	wiz := h.wizard(r)
	wiz.SetCustomerForm(r.Context(), f)
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) setProductQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SearchTerm string `json:"searchTerm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	wiz := h.wizard(r)
	wiz.SetProductQuery(body.SearchTerm)
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Page     int `json:"page"`
		PageSize int `json:"pageSize"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
	}
	wiz := h.wizard(r)
	h.Metrics.ProductSearches.Inc()
	if err := wiz.SearchProducts(r.Context(), body.Page, body.PageSize); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var p orders.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product"})
		return
	}
	wiz := h.wizard(r)
	wiz.AddProduct(r.Context(), p)
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	wiz := h.wizard(r)
	wiz.UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), body.Quantity)
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) removeProduct(w http.ResponseWriter, r *http.Request) {
	wiz := h.wizard(r)
	wiz.RemoveProduct(r.Context(), chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) setNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	wiz := h.wizard(r)
	wiz.SetNote(r.Context(), body.Note)
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) next(w http.ResponseWriter, r *http.Request) {
	wiz := h.wizard(r)
	if err := wiz.Next(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) back(w http.ResponseWriter, r *http.Request) {
	wiz := h.wizard(r)
	if err := wiz.Back(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

func (h *WizardHandler) goTo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Step int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	wiz := h.wizard(r)
	if err := wiz.GoTo(r.Context(), body.Step); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.Snapshot())
}

type submitResponse struct {
	Order    *orders.OrderCreateResponse `json:"order"`
	Redirect string                      `json:"redirect"`
}

func (h *WizardHandler) submit(w http.ResponseWriter, r *http.Request) {
	wiz := h.wizard(r)
	resp, err := wiz.Submit(r.Context())
	if err != nil {
		switch {
		case wizard.IsValidation(err):
			h.Metrics.Submissions.WithLabelValues("rejected").Inc()
		case errors.Is(err, wizard.ErrSubmitInFlight):
			// In-flight guard refusals are not attempts.
		default:
			h.Metrics.Submissions.WithLabelValues("failed").Inc()
		}
		writeError(w, err)
		return
	}
	h.Metrics.Submissions.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusCreated, submitResponse{
		Order:    resp,
		Redirect: "/orders/success/" + resp.ID,
	})
}
