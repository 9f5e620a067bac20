package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/quote/domain/models"
)

// QuoteRepository defines persistence for quote requests.
type QuoteRepository interface {
	// Save stores q after checking that its business exists and, when set,
	// that q.ProductID is an active product of that business.
	// Returns ErrBusinessNotFound or ErrProductNotFound otherwise.
	Save(ctx context.Context, q *models.Quote) error
	// List returns the business's quotes newest first, optionally filtered by status.
	List(ctx context.Context, businessID uuid.UUID, status *models.Status) ([]*models.Quote, error)
	// UpdateStatus sets the status of the business's quote.
	// Returns ErrQuoteNotFound if the quote does not exist for businessID.
	UpdateStatus(ctx context.Context, businessID, id uuid.UUID, status models.Status, at time.Time) (*models.Quote, error)
}
