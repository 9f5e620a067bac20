package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/sales/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// SaleTx is the set of storage operations that take part in one sale unit of
// work. Every call made through a SaleTx commits or rolls back together.
type SaleTx interface {
	// FindActiveProduct loads the product only when it exists, belongs to
	// tenantID and is active, locking it for the rest of the transaction.
	// Returns domain.ErrProductNotFound otherwise.
	FindActiveProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error)

	// SaveProductStock persists the product's AvailableQuantity.
	SaveProductStock(ctx context.Context, product *models.Product) error

	// InsertSaleRecord appends a record to the sales ledger and emits the
	// sale.recorded event in the same transaction.
	InsertSaleRecord(ctx context.Context, record *models.SaleRecord) error
}

// SaleRepository is the persistence interface for the sales ledger.
// The domain layer owns this interface; infrastructure implements it.
type SaleRepository interface {
	// WithinTx runs fn in a single transaction. fn's error aborts the
	// transaction and is returned unchanged; commit failures are wrapped.
	WithinTx(ctx context.Context, fn func(tx SaleTx) error) error

	// QuerySales returns one page of the tenant's records, newest first,
	// plus the total count ignoring pagination.
	QuerySales(ctx context.Context, tenantID uuid.UUID, filter models.SalesFilter, opts QueryOpts) ([]*models.SaleRecord, int, error)
}
