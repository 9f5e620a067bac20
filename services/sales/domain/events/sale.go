package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopicSaleRecorded is the Watermill topic published when a sale commits.
const TopicSaleRecorded = "sale.recorded"

// SaleRecordedEvent is written to the outbox inside the sale transaction,
// so it exists if and only if the sale committed.
type SaleRecordedEvent struct {
	EventID      uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int             `json:"version"`  // Schema version; increment on breaking changes
	SaleID       uuid.UUID       `json:"sale_id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	QuantitySold int             `json:"quantity_sold"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
