package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/database"
	"github.com/ghuser/vitrina/pkg/events"
	quotedomain "github.com/ghuser/vitrina/services/quote/domain"
	domainevents "github.com/ghuser/vitrina/services/quote/domain/events"
	"github.com/ghuser/vitrina/services/quote/domain/models"
)

const quoteColumns = `id, business_id, product_id, customer_name, customer_email,
	customer_phone, message, quantity, status, created_at, updated_at`

// QuoteRepository implements repositories.QuoteRepository against PostgreSQL.
type QuoteRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewQuoteRepository returns a QuoteRepository backed by the given connection pool
// and event bus. A nil bus disables the quote.created outbox write.
func NewQuoteRepository(db *database.Database, bus *events.EventBus) *QuoteRepository {
	return &QuoteRepository{db: db, bus: bus}
}

// Save checks the quoted business and product, inserts q and publishes
// quote.created within the same transaction.
func (r *QuoteRepository) Save(ctx context.Context, q *models.Quote) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM businesses WHERE id = $1)`, q.BusinessID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check business: %w", err)
		}
		if !exists {
			return quotedomain.ErrBusinessNotFound
		}

		if q.ProductID != nil {
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND business_id = $2 AND is_active)`,
				*q.ProductID, q.BusinessID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("check product: %w", err)
			}
			if !exists {
				return quotedomain.ErrProductNotFound
			}
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO quotes (`+quoteColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			q.ID, q.BusinessID, q.ProductID, q.CustomerName, q.CustomerEmail,
			q.CustomerPhone, q.Message, q.Quantity, string(q.Status), q.CreatedAt, q.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert quote: %w", err)
		}

		if r.bus == nil {
			return nil
		}
		return r.publishCreated(ctx, tx, q)
	})
}

func (r *QuoteRepository) publishCreated(ctx context.Context, tx *sql.Tx, q *models.Quote) error {
	event := domainevents.QuoteCreatedEvent{
		EventID:      uuid.New(),
		Version:      1,
		QuoteID:      q.ID,
		BusinessID:   q.BusinessID,
		ProductID:    q.ProductID,
		CustomerName: q.CustomerName,
		Quantity:     q.Quantity,
		OccurredAt:   q.CreatedAt,
	}
	msg, err := events.NewMessage(ctx, event.EventID.String(), event.Version, event)
	if err != nil {
		return fmt.Errorf("build quote created message: %w", err)
	}
	if err := r.bus.PublishTx(tx, domainevents.TopicQuoteCreated, msg); err != nil {
		return fmt.Errorf("publish quote created: %w", err)
	}
	return nil
}

// List returns the business's quotes newest first.
func (r *QuoteRepository) List(ctx context.Context, businessID uuid.UUID, status *models.Status) ([]*models.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE business_id = $1`
	args := []any{businessID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var quotes []*models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return quotes, nil
}

// UpdateStatus sets the quote's status and returns the updated row.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, businessID, id uuid.UUID, status models.Status, at time.Time) (*models.Quote, error) {
	q, err := scanQuote(r.db.DB().QueryRowContext(ctx, `
UPDATE quotes SET status = $3, updated_at = $4
WHERE id = $1 AND business_id = $2
RETURNING `+quoteColumns, id, businessID, string(status), at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, quotedomain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	return q, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*models.Quote, error) {
	var (
		q         models.Quote
		productID uuid.NullUUID
		status    string
	)
	if err := row.Scan(
		&q.ID, &q.BusinessID, &productID, &q.CustomerName, &q.CustomerEmail,
		&q.CustomerPhone, &q.Message, &q.Quantity, &status, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if productID.Valid {
		q.ProductID = &productID.UUID
	}
	q.Status = models.Status(status)
	return &q, nil
}
