package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

func TestStepOneGateBlocksIncompleteCustomer(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, nil, Deps{})

	w.SetCustomerForm(ctx, CustomerForm{
		FullName:    "", // missing
		PhoneNumber: "0901234567",
		Address:     "123 Lê Lợi",
		City:        "HCM",
		Country:     "VN",
	})

	err := w.Next(ctx)
	assert.ErrorIs(t, err, ErrCustomerIncomplete)
	assert.Equal(t, StepCustomer, w.Snapshot().Step, "failed gate must not change step")
}

func TestStepTwoGateBlocksEmptyCart(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, nil, Deps{})

	fillValidCustomer(ctx, w)
	require.NoError(t, w.Next(ctx))
	require.Equal(t, StepProducts, w.Snapshot().Step)

	err := w.Next(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StepProducts, w.Snapshot().Step)
}

func TestBackwardNavigationNeedsNoValidation(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, nil, Deps{})

	fillValidCustomer(ctx, w)
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))
	require.NoError(t, w.Next(ctx))
	require.NoError(t, w.Next(ctx))
	require.Equal(t, StepReview, w.Snapshot().Step)

	// Blank the form, then walk back to step 1: going back never re-validates.
	w.SetCustomerForm(ctx, CustomerForm{})
	require.NoError(t, w.Back(ctx))
	assert.Equal(t, StepProducts, w.Snapshot().Step)
	require.NoError(t, w.Back(ctx))
	assert.Equal(t, StepCustomer, w.Snapshot().Step)
	require.NoError(t, w.Back(ctx))
	assert.Equal(t, StepCustomer, w.Snapshot().Step)
}

func TestJumpForwardPassesThroughGates(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, nil, Deps{})

	err := w.GoTo(ctx, StepReview)
	assert.ErrorIs(t, err, ErrCustomerIncomplete)
	assert.Equal(t, StepCustomer, w.Snapshot().Step)

	fillValidCustomer(ctx, w)
	err = w.GoTo(ctx, StepReview)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StepProducts, w.Snapshot().Step, "jump stops at the first unmet gate")

	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))
	require.NoError(t, w.GoTo(ctx, StepReview))
	assert.Equal(t, StepReview, w.Snapshot().Step)

	// Backward jump to a completed step stays unconditional.
	require.NoError(t, w.GoTo(ctx, StepCustomer))
	assert.Equal(t, StepCustomer, w.Snapshot().Step)
}

func TestGoToRejectsUnknownStep(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, nil, Deps{})
	assert.ErrorIs(t, w.GoTo(ctx, 0), ErrInvalidStep)
	assert.ErrorIs(t, w.GoTo(ctx, 4), ErrInvalidStep)
}

func TestDraftSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	w := newTestWizard(t, kv, Deps{})
	w.SetCustomerQuery(ctx, "0901234567")
	w.SelectCustomer(ctx, orders.Customer{
		ID: "c1", FullName: "Nguyễn Văn A", PhoneNumber: "0901234567",
		Address: "123 Lê Lợi", City: "HCM", Country: "VN",
	})
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))
	w.SetNote(ctx, "giao giờ hành chính")
	require.NoError(t, w.Next(ctx))
	require.NoError(t, w.Close(ctx))

	// Reload: a fresh wizard built purely from the store.
	reloaded := newTestWizard(t, kv, Deps{})
	snap := reloaded.Snapshot()
	assert.Equal(t, StepProducts, snap.Step)
	assert.Equal(t, "0901234567", snap.CustomerQuery)
	require.NotNil(t, snap.SelectedCustomer)
	assert.Equal(t, "c1", snap.SelectedCustomer.ID)
	require.Len(t, snap.CartItems, 1)
	assert.Equal(t, 2, snap.CartItems[0].Quantity)
	assert.Equal(t, int64(180000), snap.TotalAmount)
	assert.Equal(t, "giao giờ hành chính", snap.Note)
}

func TestSubmitPreconditions(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		prepare func(w *Wizard)
		wantErr error
	}{
		{
			name:    "no customer",
			prepare: func(w *Wizard) { w.AddProduct(ctx, sampleProduct("p1", 100000, 0)) },
			wantErr: ErrNoCustomer,
		},
		{
			name:    "empty cart",
			prepare: func(w *Wizard) { fillValidCustomer(ctx, w) },
			wantErr: ErrNoProducts,
		},
		{
			name: "blank phone",
			prepare: func(w *Wizard) {
				w.SetCustomerForm(ctx, CustomerForm{ID: "c1", FullName: "A", Address: "addr", City: "HCM", Country: "VN"})
				w.AddProduct(ctx, sampleProduct("p1", 100000, 0))
			},
			wantErr: ErrPhoneRequired,
		},
		{
			name: "blank address",
			prepare: func(w *Wizard) {
				w.SetCustomerForm(ctx, CustomerForm{ID: "c1", FullName: "A", PhoneNumber: "0901", City: "HCM", Country: "VN"})
				w.AddProduct(ctx, sampleProduct("p1", 100000, 0))
			},
			wantErr: ErrAddressRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			w := newTestWizard(t, nil, Deps{
				Orders: stubOrders(func(context.Context, orders.OrderCreateRequest) (*orders.OrderCreateResponse, error) {
					called = true
					return &orders.OrderCreateResponse{}, nil
				}),
			})
			tc.prepare(w)
			_, err := w.Submit(ctx)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.False(t, called, "precondition failures must not reach the network")
		})
	}
}

func TestSubmitInFlightGuard(t *testing.T) {
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	w := newTestWizard(t, nil, Deps{
		Orders: stubOrders(func(context.Context, orders.OrderCreateRequest) (*orders.OrderCreateResponse, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			close(entered)
			<-release
			return &orders.OrderCreateResponse{ID: "o1"}, nil
		}),
	})
	fillValidCustomer(ctx, w)
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx)
		done <- err
	}()
	<-entered

	_, err := w.Submit(ctx)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "second submit while in flight must not issue a call")
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	boom := errors.New("order api down")

	w := newTestWizard(t, kv, Deps{
		Orders: stubOrders(func(context.Context, orders.OrderCreateRequest) (*orders.OrderCreateResponse, error) {
			return nil, boom
		}),
	})
	fillValidCustomer(ctx, w)
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))

	_, err := w.Submit(ctx)
	require.ErrorIs(t, err, boom)

	snap := w.Snapshot()
	assert.Equal(t, SubmissionFailed, snap.Submission)
	assert.Len(t, snap.CartItems, 1, "draft must survive a failed submission")
	assert.NotZero(t, kv.len(), "stored draft must survive a failed submission")

	// Retry works without re-entering anything.
	w2 := newTestWizard(t, kv, Deps{})
	_, err = w2.Submit(ctx)
	require.NoError(t, err)
}

func TestEndToEndManualOrder(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	var submitted orders.OrderCreateRequest
	var navigated *orders.OrderCreateResponse
	var published string

	w := newTestWizard(t, kv, Deps{
		Directory: stubDirectory(func(_ context.Context, q string) ([]orders.Customer, error) {
			require.Equal(t, "0901234567", q)
			return []orders.Customer{{
				ID: "c1", FullName: "Nguyễn Văn A", PhoneNumber: "0901234567",
			}}, nil
		}),
		Orders: stubOrders(func(_ context.Context, req orders.OrderCreateRequest) (*orders.OrderCreateResponse, error) {
			submitted = req
			return &orders.OrderCreateResponse{
				ID:          "o1",
				OrderNumber: "DH-2026-0001",
				TotalAmount: 180000,
				OrderStatus: orders.StatusPending,
				OrderDetails: []orders.OrderDetail{
					{ProductID: "p1", Quantity: 2, UnitPrice: 100000, Subtotal: 180000},
				},
			}, nil
		}),
		Events: eventRecorder{ordered: &published},
		Nav:    navRecorder{target: &navigated},
	})

	// Step 1: search, select, complete the form.
	w.SetCustomerQuery(ctx, "0901234567")
	require.NoError(t, w.SearchCustomers(ctx))
	candidates := w.Snapshot().CustomerCandidates
	require.Len(t, candidates, 1)
	w.SelectCustomer(ctx, candidates[0])

	form := w.Snapshot().CustomerForm
	form.Address = "123 Lê Lợi"
	form.City = "HCM"
	form.Country = "VN"
	w.SetCustomerForm(ctx, form)
	require.NoError(t, w.Next(ctx))

	// Step 2: same product twice merges into one line.
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))
	snap := w.Snapshot()
	require.Len(t, snap.CartItems, 1)
	require.Equal(t, 2, snap.CartItems[0].Quantity)
	require.Equal(t, int64(180000), snap.TotalAmount)
	require.NoError(t, w.Next(ctx))
	require.Equal(t, StepReview, w.Snapshot().Step)

	// Step 3: submit.
	resp, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "DH-2026-0001", resp.OrderNumber)

	assert.Equal(t, "c1", submitted.CustomerID)
	assert.Equal(t, "123 Lê Lợi", submitted.ShippingAddress)
	assert.Equal(t, []orders.OrderItemInput{{ProductID: "p1", Quantity: 2}}, submitted.OrderItems)

	// Success destroys the draft everywhere and notifies the collaborators.
	assert.Zero(t, kv.len(), "all stored keys must be removed")
	after := w.Snapshot()
	assert.Equal(t, StepCustomer, after.Step)
	assert.Empty(t, after.CartItems)
	assert.Equal(t, SubmissionSucceeded, after.Submission)
	require.NotNil(t, navigated)
	assert.Equal(t, "o1", navigated.ID)
	assert.Equal(t, "o1", published)
}

func TestResetStartsOver(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	w := newTestWizard(t, kv, Deps{})
	fillValidCustomer(ctx, w)
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))
	require.NoError(t, w.Next(ctx))
	require.NotZero(t, kv.len())

	require.NoError(t, w.Reset(ctx))
	assert.Zero(t, kv.len())
	snap := w.Snapshot()
	assert.Equal(t, StepCustomer, snap.Step)
	assert.Empty(t, snap.CartItems)
	assert.Equal(t, CustomerForm{}, snap.CustomerForm)
}

func TestCloseFlushesPendingState(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	w := newTestWizard(t, kv, Deps{})
	w.SetProductQuery("transient") // not individually persisted
	fillValidCustomer(ctx, w)
	require.NoError(t, w.Close(ctx))

	reloaded := newTestWizard(t, kv, Deps{})
	assert.Equal(t, "c1", reloaded.Snapshot().CustomerForm.ID)
}

type eventRecorder struct{ ordered *string }

func (r eventRecorder) OrderSubmitted(_ context.Context, _ string, resp *orders.OrderCreateResponse) {
	*r.ordered = resp.ID
}

type navRecorder struct{ target **orders.OrderCreateResponse }

func (r navRecorder) OrderCreated(resp *orders.OrderCreateResponse) { *r.target = resp }

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, nil, Deps{})
	w.AddProduct(ctx, sampleProduct("p1", 100000, 90000))

	snap := w.Snapshot()
	snap.CartItems[0].Quantity = 99
	snap.CustomerForm.FullName = "mutated"

	fresh := w.Snapshot()
	assert.Equal(t, 1, fresh.CartItems[0].Quantity)
	assert.Empty(t, fresh.CustomerForm.FullName)

	// Snapshots taken under concurrent mutation must stay internally
	// consistent; run briefly with the race detector in mind.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			w.AddProduct(ctx, sampleProduct("p2", 10000, 0))
		}
	}()
	deadline := time.After(time.Second)
	for {
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("concurrent mutation did not finish")
		default:
			s := w.Snapshot()
			assert.Equal(t, cartTotalOf(s.CartItems), s.TotalAmount)
		}
	}
}

func cartTotalOf(items []orders.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.DiscountedUnitPrice * int64(it.Quantity)
	}
	return total
}
