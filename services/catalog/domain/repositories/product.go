package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/catalog/domain/models"
)

// PublicFilter narrows the public catalog listing.
type PublicFilter struct {
	Query    string // case-insensitive substring of the title
	Category string // exact match when set
}

// ProductRepository is the persistence interface for the Product aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Every write also emits a product.changed event in the same transaction.
type ProductRepository interface {
	Save(ctx context.Context, p *models.Product) error

	// Update loads the tenant's product under a row lock, applies mutate and
	// writes the result in one transaction, so a concurrent sale's stock
	// decrement is never overwritten. mutate's error aborts the update and is
	// returned unchanged. Returns ErrProductNotFound if none matched.
	Update(ctx context.Context, businessID, id uuid.UUID, mutate func(p *models.Product) error) (*models.Product, error)

	// Delete removes the tenant's product. Returns ErrProductNotFound if none matched.
	Delete(ctx context.Context, businessID, id uuid.UUID) error

	// GetByID returns the tenant's product whatever its active state.
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Product, error)

	// GetActive returns an active product by id, for public reads.
	GetActive(ctx context.Context, id uuid.UUID) (*models.Product, error)

	// ListActive returns the business's active products, newest first.
	ListActive(ctx context.Context, businessID uuid.UUID, filter PublicFilter) ([]*models.Product, error)

	// ListByBusiness returns all of the business's products, newest first.
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*models.Product, error)
}
