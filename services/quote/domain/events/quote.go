package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicQuoteCreated is the Watermill topic published when a visitor submits a quote.
const TopicQuoteCreated = "quote.created"

// QuoteCreatedEvent is written to the outbox in the same transaction as the quote.
type QuoteCreatedEvent struct {
	EventID      uuid.UUID  `json:"event_id"`
	Version      int        `json:"version"`
	QuoteID      uuid.UUID  `json:"quote_id"`
	BusinessID   uuid.UUID  `json:"business_id"`
	ProductID    *uuid.UUID `json:"product_id,omitempty"`
	CustomerName string     `json:"customer_name"`
	Quantity     int        `json:"quantity"`
	OccurredAt   time.Time  `json:"occurred_at"`
}
