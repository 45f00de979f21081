package wizard

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// memKV is an in-memory substrate implementing the same contract as the
// Redis and Postgres stores.
type memKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemKV() *memKV { return &memKV{m: make(map[string]string)} }

func (k *memKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

func (k *memKV) Del(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.m, key)
	}
	return nil
}

func (k *memKV) len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.m)
}

type stubDirectory func(ctx context.Context, q string) ([]orders.Customer, error)

func (f stubDirectory) SearchCustomersByPhone(ctx context.Context, q string) ([]orders.Customer, error) {
	return f(ctx, q)
}

type stubCatalog func(ctx context.Context, term string, page, pageSize int, inStockOnly bool) (orders.ProductPage, error)

func (f stubCatalog) SearchProducts(ctx context.Context, term string, page, pageSize int, inStockOnly bool) (orders.ProductPage, error) {
	return f(ctx, term, page, pageSize, inStockOnly)
}

type stubOrders func(ctx context.Context, req orders.OrderCreateRequest) (*orders.OrderCreateResponse, error)

func (f stubOrders) CreateManualOrder(ctx context.Context, req orders.OrderCreateRequest) (*orders.OrderCreateResponse, error) {
	return f(ctx, req)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWizard(t *testing.T, kv KV, deps Deps) *Wizard {
	t.Helper()
	if kv == nil {
		kv = newMemKV()
	}
	if deps.Store == nil {
		deps.Store = NewDraftStore(kv, "tester")
	}
	if deps.Directory == nil {
		deps.Directory = stubDirectory(func(context.Context, string) ([]orders.Customer, error) {
			return nil, nil
		})
	}
	if deps.Catalog == nil {
		deps.Catalog = stubCatalog(func(context.Context, string, int, int, bool) (orders.ProductPage, error) {
			return orders.ProductPage{}, nil
		})
	}
	if deps.Orders == nil {
		deps.Orders = stubOrders(func(context.Context, orders.OrderCreateRequest) (*orders.OrderCreateResponse, error) {
			return &orders.OrderCreateResponse{}, nil
		})
	}
	deps.Log = quietLogger()
	return New(context.Background(), deps)
}

func sampleProduct(id string, price, discount int64) orders.Product {
	return orders.Product{
		ID:            id,
		Name:          "Product " + id,
		Price:         price,
		DiscountPrice: discount,
		ImageURLs:     []string{"https://img.example/" + id + ".jpg"},
	}
}

func fillValidCustomer(ctx context.Context, w *Wizard) {
	w.SetCustomerForm(ctx, CustomerForm{
		ID:          "c1",
		FullName:    "Nguyễn Văn A",
		PhoneNumber: "0901234567",
		Address:     "123 Lê Lợi",
		City:        "HCM",
		Country:     "VN",
	})
}
