package orders

// Status mirrors the numeric order status codes used by the order API.
type Status int

const (
	StatusPending Status = iota + 1
	StatusProcessing
	StatusShipped
	StatusDelivered
	StatusCancelled
	StatusReturned
	StatusRefunded
)

var statusNames = map[Status]string{
	StatusPending:    "PENDING",
	StatusProcessing: "PROCESSING",
	StatusShipped:    "SHIPPED",
	StatusDelivered:  "DELIVERED",
	StatusCancelled:  "CANCELLED",
	StatusReturned:   "RETURNED",
	StatusRefunded:   "REFUNDED",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}
