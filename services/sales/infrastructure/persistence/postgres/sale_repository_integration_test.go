package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vitrina/pkg/config"
	"github.com/ghuser/vitrina/pkg/database"
	"github.com/ghuser/vitrina/pkg/events"
	"github.com/ghuser/vitrina/pkg/logger"
	"github.com/ghuser/vitrina/pkg/migrator"
	appsvcs "github.com/ghuser/vitrina/services/sales/application/services"
	salesdomain "github.com/ghuser/vitrina/services/sales/domain"
	domainevents "github.com/ghuser/vitrina/services/sales/domain/events"
	"github.com/ghuser/vitrina/services/sales/domain/models"
	"github.com/ghuser/vitrina/services/sales/domain/repositories"
	"github.com/ghuser/vitrina/services/sales/infrastructure/persistence/postgres"
)

const outboxTable = `"watermill_sale.recorded"`

type pgEnv struct {
	db   *database.Database
	bus  *events.EventBus
	repo *postgres.SaleRepository
	log  logger.Logger
}

// newPgEnv migrates DATABASE_URL and returns a repository writing to it.
// Skipped unless DATABASE_URL is set.
func newPgEnv(t *testing.T) *pgEnv {
	t.Helper()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	if err := migrator.RunMigrations(databaseURL, os.DirFS("../../../../../migrations/marketplace")); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{LogLevel: "error", DatabaseURL: databaseURL, ServiceName: "vitrina-test"}
	log := logger.New(cfg)

	db, err := database.NewPool(ctx, databaseURL, log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(db.Close)

	bus, err := events.NewEventBus(cfg, log)
	if err != nil {
		t.Fatalf("event bus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	// The in-transaction publisher never creates topic tables.
	warm, err := events.NewMessage(ctx, uuid.NewString(), 1, domainevents.SaleRecordedEvent{})
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Publish(ctx, domainevents.TopicSaleRecorded, warm); err != nil {
		t.Fatalf("initialize outbox topic: %v", err)
	}

	return &pgEnv{db: db, bus: bus, repo: postgres.NewSaleRepository(db, bus), log: log}
}

// seedProduct inserts a fresh business with one active product.
func (e *pgEnv) seedProduct(t *testing.T, stock int) (tenantID, productID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	tenantID, productID = uuid.New(), uuid.New()

	if _, err := e.db.DB().ExecContext(ctx,
		`INSERT INTO businesses (id, name) VALUES ($1, $2)`, tenantID, "Taller "+tenantID.String()[:8]); err != nil {
		t.Fatalf("insert business: %v", err)
	}
	if _, err := e.db.DB().ExecContext(ctx,
		`INSERT INTO products (id, business_id, title, price, available_quantity) VALUES ($1, $2, $3, $4, $5)`,
		productID, tenantID, "Mesa de roble", decimal.NewFromInt(120), stock); err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return tenantID, productID
}

func (e *pgEnv) stock(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	var n int
	if err := e.db.DB().QueryRowContext(context.Background(),
		`SELECT available_quantity FROM products WHERE id = $1`, productID).Scan(&n); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return n
}

func (e *pgEnv) count(t *testing.T, query string, productID uuid.UUID) int {
	t.Helper()
	var n int
	if err := e.db.DB().QueryRowContext(context.Background(), query, productID).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func (e *pgEnv) ledgerRows(t *testing.T, productID uuid.UUID) int {
	return e.count(t, `SELECT count(*) FROM sale_records WHERE product_id = $1`, productID)
}

func (e *pgEnv) outboxRows(t *testing.T, productID uuid.UUID) int {
	return e.count(t, `SELECT count(*) FROM `+outboxTable+` WHERE payload->>'product_id' = $1::text`, productID)
}

func TestSaleRepository_ConcurrentOversell(t *testing.T) {
	env := newPgEnv(t)
	tenantID, productID := env.seedProduct(t, 10)
	svc := appsvcs.NewSaleService(env.repo, env.log)

	in := models.SaleInput{
		ProductID:     productID,
		Quantity:      6,
		UnitSalePrice: decimal.RequireFromString("99.90"),
		Profit:        decimal.NewFromInt(20),
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecordSale(context.Background(), tenantID, in)
		}(i)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, salesdomain.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || short != 1 {
		t.Fatalf("expected one success and one ErrInsufficientStock, got %d/%d", ok, short)
	}
	if got := env.stock(t, productID); got != 4 {
		t.Fatalf("expected stock 4, got %d", got)
	}
	if got := env.ledgerRows(t, productID); got != 1 {
		t.Fatalf("expected 1 ledger row, got %d", got)
	}
	if got := env.outboxRows(t, productID); got != 1 {
		t.Fatalf("expected 1 sale.recorded event, got %d", got)
	}

	var total decimal.Decimal
	if err := env.db.DB().QueryRowContext(context.Background(),
		`SELECT total_amount FROM sale_records WHERE product_id = $1`, productID).Scan(&total); err != nil {
		t.Fatal(err)
	}
	if !total.Equal(decimal.RequireFromString("599.40")) {
		t.Errorf("stored total = %s, want 599.40", total)
	}
}

func TestSaleRepository_FailedInsertRollsBack(t *testing.T) {
	env := newPgEnv(t)
	tenantID, productID := env.seedProduct(t, 10)
	ctx := context.Background()

	err := env.repo.WithinTx(ctx, func(tx repositories.SaleTx) error {
		p, err := tx.FindActiveProduct(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		if err := p.Decrement(3); err != nil {
			return err
		}
		if err := tx.SaveProductStock(ctx, p); err != nil {
			return err
		}
		// quantity_sold violates the table's CHECK constraint.
		return tx.InsertSaleRecord(ctx, &models.SaleRecord{
			ID:                  uuid.New(),
			TenantID:            tenantID,
			ProductID:           productID,
			ProductNameSnapshot: p.Name,
			QuantitySold:        0,
			UnitSalePrice:       decimal.NewFromInt(100),
			TotalAmount:         decimal.Zero,
			Profit:              decimal.Zero,
		})
	})
	if err == nil {
		t.Fatal("expected insert to fail")
	}

	if got := env.stock(t, productID); got != 10 {
		t.Fatalf("stock must be rolled back to 10, got %d", got)
	}
	if got := env.ledgerRows(t, productID); got != 0 {
		t.Fatalf("expected no ledger rows, got %d", got)
	}
	if got := env.outboxRows(t, productID); got != 0 {
		t.Fatalf("expected no outbox events, got %d", got)
	}
}

func TestSaleRepository_TenantScopedLookup(t *testing.T) {
	env := newPgEnv(t)
	_, productID := env.seedProduct(t, 10)
	otherTenant, _ := env.seedProduct(t, 1)
	ctx := context.Background()

	err := env.repo.WithinTx(ctx, func(tx repositories.SaleTx) error {
		_, err := tx.FindActiveProduct(ctx, otherTenant, productID)
		return err
	})
	if !errors.Is(err, salesdomain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
