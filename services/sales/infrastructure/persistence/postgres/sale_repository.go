package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/database"
	"github.com/ghuser/vitrina/pkg/events"
	salesdomain "github.com/ghuser/vitrina/services/sales/domain"
	domainevents "github.com/ghuser/vitrina/services/sales/domain/events"
	"github.com/ghuser/vitrina/services/sales/domain/models"
	"github.com/ghuser/vitrina/services/sales/domain/repositories"
)

const (
	selectActiveProductForUpdate = `
SELECT id, business_id, title, available_quantity, price, is_active
FROM products
WHERE id = $1 AND business_id = $2 AND is_active
FOR UPDATE`

	updateProductStock = `
UPDATE products
SET available_quantity = $3, updated_at = now()
WHERE id = $1 AND business_id = $2`

	insertSaleRecord = `
INSERT INTO sale_records (
	id, business_id, product_id, product_name,
	quantity_sold, unit_sale_price, total_amount, profit, occurred_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectSaleColumns = `
SELECT id, business_id, product_id, product_name,
	quantity_sold, unit_sale_price, total_amount, profit, occurred_at
FROM sale_records`
)

// SaleRepository implements repositories.SaleRepository against PostgreSQL.
type SaleRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSaleRepository returns a SaleRepository backed by the given connection pool
// and event bus. A nil bus disables the sale.recorded outbox write.
func NewSaleRepository(db *database.Database, bus *events.EventBus) *SaleRepository {
	return &SaleRepository{db: db, bus: bus}
}

// WithinTx runs fn in one database transaction. fn's error is returned
// unchanged so business errors keep their identity.
func (r *SaleRepository) WithinTx(ctx context.Context, fn func(tx repositories.SaleTx) error) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&saleTx{tx: tx, bus: r.bus})
	})
}

// QuerySales returns one page of the tenant's sale records and the total
// number of records matching filter.
func (r *SaleRepository) QuerySales(ctx context.Context, tenantID uuid.UUID, filter models.SalesFilter, opts repositories.QueryOpts) ([]*models.SaleRecord, int, error) {
	where, args := salesWhere(tenantID, filter)
	q := r.db.DB()

	var total int
	if err := q.QueryRowContext(ctx, "SELECT count(*) FROM sale_records"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d",
		selectSaleColumns, where, len(args)+1, len(args)+2)
	rows, err := q.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	records := make([]*models.SaleRecord, 0, opts.Limit)
	for rows.Next() {
		rec, err := scanSaleRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sales: %w", err)
	}
	return records, total, nil
}

// salesWhere builds the WHERE clause shared by the count and page queries.
func salesWhere(tenantID uuid.UUID, f models.SalesFilter) (string, []any) {
	conds := []string{"business_id = $1"}
	args := []any{tenantID}

	if f.From != nil {
		args = append(args, f.From.UTC())
		conds = append(conds, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, models.EndOfDay(*f.To))
		conds = append(conds, fmt.Sprintf("occurred_at <= $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		conds = append(conds, fmt.Sprintf(`product_name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaleRecord(row rowScanner) (*models.SaleRecord, error) {
	var rec models.SaleRecord
	if err := row.Scan(
		&rec.ID,
		&rec.TenantID,
		&rec.ProductID,
		&rec.ProductNameSnapshot,
		&rec.QuantitySold,
		&rec.UnitSalePrice,
		&rec.TotalAmount,
		&rec.Profit,
		&rec.OccurredAt,
	); err != nil {
		return nil, err
	}
	rec.OccurredAt = rec.OccurredAt.UTC()
	return &rec, nil
}

// saleTx is the SaleTx bound to one *sql.Tx.
type saleTx struct {
	tx  *sql.Tx
	bus *events.EventBus
}

// FindActiveProduct takes a row lock on the product so concurrent sales of
// the same product run one after another until this transaction ends.
func (t *saleTx) FindActiveProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := t.tx.QueryRowContext(ctx, selectActiveProductForUpdate, productID, tenantID).Scan(
		&p.ID,
		&p.TenantID,
		&p.Name,
		&p.AvailableQuantity,
		&p.UnitPrice,
		&p.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salesdomain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (t *saleTx) SaveProductStock(ctx context.Context, product *models.Product) error {
	res, err := t.tx.ExecContext(ctx, updateProductStock, product.ID, product.TenantID, product.AvailableQuantity)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("update product stock: %d rows affected", n)
	}
	return nil
}

// InsertSaleRecord appends rec to the ledger and writes the sale.recorded
// event to the outbox in the same transaction.
func (t *saleTx) InsertSaleRecord(ctx context.Context, rec *models.SaleRecord) error {
	if _, err := t.tx.ExecContext(ctx, insertSaleRecord,
		rec.ID,
		rec.TenantID,
		rec.ProductID,
		rec.ProductNameSnapshot,
		rec.QuantitySold,
		rec.UnitSalePrice,
		rec.TotalAmount,
		rec.Profit,
		rec.OccurredAt,
	); err != nil {
		return fmt.Errorf("insert sale record: %w", err)
	}

	if t.bus == nil {
		return nil
	}
	if err := t.publishRecorded(ctx, rec); err != nil {
		return fmt.Errorf("publish sale recorded: %w", err)
	}
	return nil
}

func (t *saleTx) publishRecorded(ctx context.Context, rec *models.SaleRecord) error {
	event := domainevents.SaleRecordedEvent{
		EventID:      uuid.New(),
		Version:      1,
		SaleID:       rec.ID,
		TenantID:     rec.TenantID,
		ProductID:    rec.ProductID,
		QuantitySold: rec.QuantitySold,
		TotalAmount:  rec.TotalAmount,
		OccurredAt:   rec.OccurredAt,
	}
	msg, err := events.NewMessage(ctx, event.EventID.String(), event.Version, event)
	if err != nil {
		return err
	}
	return t.bus.PublishTx(t.tx, domainevents.TopicSaleRecorded, msg)
}
