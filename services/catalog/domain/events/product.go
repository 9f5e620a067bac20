package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicProductChanged is the Watermill topic published when a product is
// created, updated or deleted.
const TopicProductChanged = "product.changed"

// Product change kinds.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// ProductChangedEvent is written to the outbox in the same transaction as
// the product write.
type ProductChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ProductID  uuid.UUID `json:"product_id"`
	BusinessID uuid.UUID `json:"business_id"`
	Change     string    `json:"change"`
	OccurredAt time.Time `json:"occurred_at"`
}
