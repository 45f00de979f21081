package kafka

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/vanloistore/backoffice-wizard/internal/orders"
)

// SubmissionPublisher emits a ManualOrderSubmitted envelope after the order
// API confirms a wizard submission.
type SubmissionPublisher struct {
	Producer *Producer
	Service  string
}

func (p *SubmissionPublisher) OrderSubmitted(ctx context.Context, owner string, resp *orders.OrderCreateResponse) {
	items := make([]orders.OrderItemInput, 0, len(resp.OrderDetails))
	for _, d := range resp.OrderDetails {
		items = append(items, orders.OrderItemInput{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventManualOrderSubmitted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.Service,
		CorrelationID: resp.ID,
	}
	ev.Payload = MustMarshal(orders.ManualOrderSubmittedPayload{
		OrderID:      resp.ID,
		OrderNumber:  resp.OrderNumber,
		CustomerID:   resp.CustomerID,
		CustomerName: resp.CustomerName,
		TotalAmount:  resp.TotalAmount,
		Items:        items,
		SubmittedBy:  owner,
	})
	p.Producer.Publish(orders.PartitionKey(resp.ID), MustMarshal(ev),
		kafka.Header{Key: "x-event-type", Value: []byte(orders.EventManualOrderSubmitted)},
		kafka.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
