package wizard

import "github.com/vanloistore/backoffice-wizard/internal/orders"

// Wizard steps.
const (
	StepCustomer = 1
	StepProducts = 2
	StepReview   = 3
)

// SubmissionState tracks the create-order call.
type SubmissionState string

const (
	SubmissionIdle      SubmissionState = "IDLE"
	SubmissionInFlight  SubmissionState = "IN_FLIGHT"
	SubmissionSucceeded SubmissionState = "SUCCEEDED"
	SubmissionFailed    SubmissionState = "FAILED"
)

// CustomerForm holds the editable customer fields. It starts as a copy of the
// selected customer but the operator may edit it afterwards; the edited values
// win at submission time.
type CustomerForm struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// Draft is the single source of truth for an in-progress manual order.
// Every mutation is mirrored to the draft store so a reload resumes mid-wizard.
type Draft struct {
	Step int `json:"step"`

	// Step 1: customer selection.
	CustomerQuery      string            `json:"customerQuery"`
	CustomerCandidates []orders.Customer `json:"customerCandidates,omitempty"`
	SelectedCustomer   *orders.Customer  `json:"selectedCustomer"`
	CustomerForm       CustomerForm      `json:"customerForm"`

	// Step 2: product search is transient, the cart is persisted.
	ProductQuery      string            `json:"productQuery"`
	ProductCandidates []orders.Product  `json:"productCandidates,omitempty"`
	Page              int               `json:"page"`
	PageSize          int               `json:"pageSize"`
	TotalCount        int               `json:"totalCount"`
	CartItems         []orders.CartItem `json:"cartItems"`
	TotalAmount       int64             `json:"totalAmount"`

	// Step 3: review.
	Note             string                      `json:"note"`
	Submission       SubmissionState             `json:"submission"`
	SubmissionError  string                      `json:"submissionError,omitempty"`
	OrderResponse    *orders.OrderCreateResponse `json:"orderResponse,omitempty"`
}

func NewDraft() Draft {
	return Draft{
		Step:       StepCustomer,
		Page:       1,
		PageSize:   10,
		Submission: SubmissionIdle,
	}
}

// cartTotal is the only way TotalAmount is ever produced.
func cartTotal(items []orders.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.DiscountedUnitPrice * int64(it.Quantity)
	}
	return total
}
