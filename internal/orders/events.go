package orders

import (
	"encoding/json"
	"time"
)

const EventManualOrderSubmitted = "ManualOrderSubmitted"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

// ManualOrderSubmittedPayload is published after the order API confirms a
// manually created order. Downstream consumers (reporting, notifications)
// re-query the order API for anything beyond this summary.
type ManualOrderSubmittedPayload struct {
	OrderID      string           `json:"order_id"`
	OrderNumber  string           `json:"order_number"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name,omitempty"`
	TotalAmount  int64            `json:"total_amount"`
	Items        []OrderItemInput `json:"items"`
	SubmittedBy  string           `json:"submitted_by,omitempty"` // wizard owner
}
