package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the sales context's view of a catalog product: only the fields
// a sale reads or writes. AvailableQuantity is the one field a sale mutates.
type Product struct {
	ID                uuid.UUID
	TenantID          uuid.UUID // owning business; immutable after creation
	Name              string
	AvailableQuantity int
	UnitPrice         decimal.Decimal // advisory only, never used as the sale price
	IsActive          bool
}

// Decrement removes quantity units from stock. Stock never goes below zero
// and inactive products are never decremented.
func (p *Product) Decrement(quantity int) error {
	if !p.IsActive {
		return fmt.Errorf("product %s is inactive", p.ID)
	}
	if quantity <= 0 {
		return fmt.Errorf("decrement quantity must be positive, got %d", quantity)
	}
	if quantity > p.AvailableQuantity {
		return fmt.Errorf("decrement of %d exceeds available %d", quantity, p.AvailableQuantity)
	}
	p.AvailableQuantity -= quantity
	return nil
}
