package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleInput carries the caller-supplied fields of one sale. The tenant is
// never part of it; it comes from the authenticated principal.
type SaleInput struct {
	ProductID     uuid.UUID
	Quantity      int
	UnitSalePrice decimal.Decimal
	Profit        decimal.Decimal // caller-supplied cost basis is unknown here, so profit is not derived
}

// Money columns are NUMERIC(12,2) per unit and NUMERIC(14,2) for totals.
const moneyScale = 2

var (
	maxUnitAmount  = decimal.New(1, 10)
	maxTotalAmount = decimal.New(1, 12)
)

// Validate checks presence and range of every field. Money values must fit
// the ledger columns exactly, so what is stored is what the caller sent.
func (in SaleInput) Validate(tenantID uuid.UUID) error {
	switch {
	case tenantID == uuid.Nil:
		return fmt.Errorf("tenant is required")
	case in.ProductID == uuid.Nil:
		return fmt.Errorf("product_id is required")
	case in.Quantity <= 0:
		return fmt.Errorf("quantity must be a positive integer")
	case !in.UnitSalePrice.IsPositive():
		return fmt.Errorf("unit_sale_price must be greater than zero")
	case in.Profit.IsNegative():
		return fmt.Errorf("profit must not be negative")
	}
	if err := checkMoney("unit_sale_price", in.UnitSalePrice, maxUnitAmount); err != nil {
		return err
	}
	if err := checkMoney("profit", in.Profit, maxUnitAmount); err != nil {
		return err
	}
	if in.total().GreaterThanOrEqual(maxTotalAmount) {
		return fmt.Errorf("total amount must be less than %s", maxTotalAmount)
	}
	return nil
}

func (in SaleInput) total() decimal.Decimal {
	return in.UnitSalePrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
}

func checkMoney(field string, d, limit decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return fmt.Errorf("%s must have at most %d decimal places", field, moneyScale)
	}
	if d.Abs().GreaterThanOrEqual(limit) {
		return fmt.Errorf("%s must be less than %s", field, limit)
	}
	return nil
}

// SaleRecord is an immutable sales-history entry. It is created exactly once
// per successful sale and never updated or deleted.
type SaleRecord struct {
	ID                  uuid.UUID // UUIDv7, ordered by creation
	TenantID            uuid.UUID
	ProductID           uuid.UUID
	ProductNameSnapshot string
	QuantitySold        int
	UnitSalePrice       decimal.Decimal
	TotalAmount         decimal.Decimal
	Profit              decimal.Decimal
	OccurredAt          time.Time
}

// NewSaleRecord builds the record for a sale of product. The product name is
// snapshotted so later renames do not rewrite history.
func NewSaleRecord(tenantID uuid.UUID, product *Product, in SaleInput, now time.Time) (*SaleRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate sale id: %w", err)
	}
	return &SaleRecord{
		ID:                  id,
		TenantID:            tenantID,
		ProductID:           product.ID,
		ProductNameSnapshot: product.Name,
		QuantitySold:        in.Quantity,
		UnitSalePrice:       in.UnitSalePrice,
		TotalAmount:         in.total(),
		Profit:              in.Profit,
		OccurredAt:          now.UTC(),
	}, nil
}

// SalesFilter narrows a ledger query. From and To are inclusive; nil means unbounded.
type SalesFilter struct {
	From  *time.Time
	To    *time.Time
	Query string
}

// EndOfDay returns the last representable instant of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Microsecond), time.UTC)
}
