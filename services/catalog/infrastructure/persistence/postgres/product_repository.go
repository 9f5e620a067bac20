package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ghuser/vitrina/pkg/database"
	"github.com/ghuser/vitrina/pkg/events"
	catalogdomain "github.com/ghuser/vitrina/services/catalog/domain"
	domainevents "github.com/ghuser/vitrina/services/catalog/domain/events"
	"github.com/ghuser/vitrina/services/catalog/domain/models"
	"github.com/ghuser/vitrina/services/catalog/domain/repositories"
)

const productColumns = `id, business_id, title, description, price, images, category,
	available_quantity, is_active, created_at, updated_at`

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
type ProductRepository struct {
	db    *database.Database
	bus   *events.EventBus
	types *pgtype.Map
}

// NewProductRepository returns a ProductRepository backed by the given connection pool
// and event bus. The bus is used to publish ProductChangedEvents inside each write.
func NewProductRepository(db *database.Database, bus *events.EventBus) *ProductRepository {
	return &ProductRepository{db: db, bus: bus, types: pgtype.NewMap()}
}

// Save persists a new product and publishes a created event within the same transaction.
func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO products (`+productColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			p.ID, p.BusinessID, p.Title.String(), p.Description, p.Price, p.Images, p.Category,
			p.AvailableQuantity, p.IsActive, p.CreatedAt, p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return r.publishChanged(ctx, tx, p.ID, p.BusinessID, domainevents.ChangeCreated, p.UpdatedAt)
	})
}

// Update locks the product row, applies mutate and writes every mutable column.
// business_id is never written.
func (r *ProductRepository) Update(ctx context.Context, businessID, id uuid.UUID, mutate func(p *models.Product) error) (*models.Product, error) {
	var updated *models.Product
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		p, err := r.scanOne(tx.QueryRowContext(ctx,
			`SELECT `+productColumns+` FROM products WHERE id = $1 AND business_id = $2 FOR UPDATE`,
			id, businessID))
		if err != nil {
			return err
		}

		if err := mutate(p); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE products
SET title = $3, description = $4, price = $5, images = $6, category = $7,
	available_quantity = $8, is_active = $9, updated_at = $10
WHERE id = $1 AND business_id = $2`,
			p.ID, p.BusinessID, p.Title.String(), p.Description, p.Price, p.Images, p.Category,
			p.AvailableQuantity, p.IsActive, p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		updated = p
		return r.publishChanged(ctx, tx, p.ID, p.BusinessID, domainevents.ChangeUpdated, p.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the tenant's product. Returns ErrProductNotFound if none matched.
func (r *ProductRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND business_id = $2`, id, businessID)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if n == 0 {
			return catalogdomain.ErrProductNotFound
		}
		return r.publishChanged(ctx, tx, id, businessID, domainevents.ChangeDeleted, time.Now().UTC())
	})
}

// GetByID retrieves the tenant's product. Returns ErrProductNotFound if not found.
func (r *ProductRepository) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Product, error) {
	return r.scanOne(r.db.DB().QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND business_id = $2`, id, businessID))
}

// GetActive retrieves an active product by id. Returns ErrProductNotFound otherwise.
func (r *ProductRepository) GetActive(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.scanOne(r.db.DB().QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND is_active`, id))
}

// ListActive returns the business's active products, newest first.
func (r *ProductRepository) ListActive(ctx context.Context, businessID uuid.UUID, f repositories.PublicFilter) ([]*models.Product, error) {
	conds := []string{"business_id = $1", "is_active"}
	args := []any{businessID}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		conds = append(conds, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		args = append(args, c)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	return r.scanMany(ctx, `SELECT `+productColumns+` FROM products WHERE `+
		strings.Join(conds, " AND ")+` ORDER BY created_at DESC, id DESC`, args...)
}

// ListByBusiness returns all of the business's products, newest first.
func (r *ProductRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*models.Product, error) {
	return r.scanMany(ctx, `SELECT `+productColumns+` FROM products WHERE business_id = $1
ORDER BY created_at DESC, id DESC`, businessID)
}

func (r *ProductRepository) scanMany(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	products := []*models.Product{}
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) scanOne(row *sql.Row) (*models.Product, error) {
	p, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProductRepository) scan(row rowScanner) (*models.Product, error) {
	var (
		p      models.Product
		title  string
		images []string
	)
	if err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&title,
		&p.Description,
		&p.Price,
		r.types.SQLScanner(&images),
		&p.Category,
		&p.AvailableQuantity,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}
	p.Title = models.ProductTitle(title)
	p.Images = images
	return &p, nil
}

func (r *ProductRepository) publishChanged(ctx context.Context, tx *sql.Tx, productID, businessID uuid.UUID, change string, at time.Time) error {
	if r.bus == nil {
		return nil
	}
	event := domainevents.ProductChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ProductID:  productID,
		BusinessID: businessID,
		Change:     change,
		OccurredAt: at,
	}
	msg, err := events.NewMessage(ctx, event.EventID.String(), event.Version, event)
	if err != nil {
		return fmt.Errorf("publish product %s: %w", change, err)
	}
	if err := r.bus.PublishTx(tx, domainevents.TopicProductChanged, msg); err != nil {
		return fmt.Errorf("publish product %s: %w", change, err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
