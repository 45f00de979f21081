package wizard

import "errors"

// Validation errors are local: they surface immediately and never reach the
// network. The HTTP layer maps them to 4xx responses.
var (
	ErrCustomerQueryTooShort = errors.New("enter at least 3 characters of the phone number")
	ErrProductQueryTooShort  = errors.New("enter at least 2 characters to search")
	ErrCustomerIncomplete    = errors.New("customer details incomplete: full name, phone, address, city and country are required")
	ErrEmptyCart             = errors.New("select at least one product to continue")
	ErrInvalidStep           = errors.New("invalid step")

	ErrNoCustomer      = errors.New("cannot create order: select or enter a customer")
	ErrNoProducts      = errors.New("cannot create order: select at least one product")
	ErrPhoneRequired   = errors.New("customer phone number is required")
	ErrAddressRequired = errors.New("shipping address is required")

	ErrSubmitInFlight = errors.New("order submission already in progress")
)

// IsValidation reports whether err is a local input-validation error as
// opposed to a network or service failure.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrCustomerQueryTooShort, ErrProductQueryTooShort, ErrCustomerIncomplete,
		ErrEmptyCart, ErrInvalidStep, ErrNoCustomer, ErrNoProducts,
		ErrPhoneRequired, ErrAddressRequired,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
