package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vitrina/pkg/config"
	"github.com/ghuser/vitrina/pkg/logger"
	salesdomain "github.com/ghuser/vitrina/services/sales/domain"
	"github.com/ghuser/vitrina/services/sales/domain/models"
	"github.com/ghuser/vitrina/services/sales/domain/repositories"
)

// memStore is an in-memory SaleRepository. WithinTx holds a store-wide lock
// for the whole transaction, works on a copy of the products and applies the
// copy only on commit, so an aborted transaction leaves no trace.
type memStore struct {
	mu         sync.Mutex
	products   map[uuid.UUID]models.Product
	sales      []*models.SaleRecord
	txCount    atomic.Int32
	failInsert error
	failCommit error
}

func newMemStore(products ...models.Product) *memStore {
	m := &memStore{products: make(map[uuid.UUID]models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx repositories.SaleTx) error) error {
	m.txCount.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{store: m, products: make(map[uuid.UUID]models.Product, len(m.products))}
	for id, p := range m.products {
		tx.products[id] = p
	}

	if err := fn(tx); err != nil {
		return err
	}
	if m.failCommit != nil {
		return fmt.Errorf("commit tx: %w", m.failCommit)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	m.products = tx.products
	m.sales = append(m.sales, tx.sales...)
	return nil
}

func (m *memStore) QuerySales(_ context.Context, tenantID uuid.UUID, f models.SalesFilter, opts repositories.QueryOpts) ([]*models.SaleRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*models.SaleRecord
	for _, s := range m.sales {
		if s.TenantID != tenantID {
			continue
		}
		if f.From != nil && s.OccurredAt.Before(*f.From) {
			continue
		}
		if f.To != nil && s.OccurredAt.After(models.EndOfDay(*f.To)) {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(s.ProductNameSnapshot), strings.ToLower(f.Query)) {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].OccurredAt.Equal(matched[j].OccurredAt) {
			return matched[i].OccurredAt.After(matched[j].OccurredAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := len(matched)
	start := min(opts.Offset, total)
	end := min(start+opts.Limit, total)
	return matched[start:end], total, nil
}

func (m *memStore) stock(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].AvailableQuantity
}

func (m *memStore) salesFor(productID uuid.UUID) []*models.SaleRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.SaleRecord
	for _, s := range m.sales {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out
}

type memTx struct {
	store    *memStore
	products map[uuid.UUID]models.Product
	sales    []*models.SaleRecord
}

func (tx *memTx) FindActiveProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	p, ok := tx.products[productID]
	if !ok || p.TenantID != tenantID || !p.IsActive {
		return nil, salesdomain.ErrProductNotFound
	}
	return &p, nil
}

func (tx *memTx) SaveProductStock(_ context.Context, product *models.Product) error {
	p := tx.products[product.ID]
	p.AvailableQuantity = product.AvailableQuantity
	tx.products[product.ID] = p
	return nil
}

func (tx *memTx) InsertSaleRecord(_ context.Context, record *models.SaleRecord) error {
	if tx.store.failInsert != nil {
		return tx.store.failInsert
	}
	tx.sales = append(tx.sales, record)
	return nil
}

func newTestService(store *memStore) *SaleService {
	return NewSaleService(store, logger.New(&config.Config{LogLevel: "error"}))
}

func saleInput(productID uuid.UUID, quantity int) models.SaleInput {
	return models.SaleInput{
		ProductID:     productID,
		Quantity:      quantity,
		UnitSalePrice: decimal.NewFromInt(100),
		Profit:        decimal.NewFromInt(30),
	}
}

func pricedInput(productID uuid.UUID, quantity int, price string) models.SaleInput {
	in := saleInput(productID, quantity)
	in.UnitSalePrice = decimal.RequireFromString(price)
	return in
}

func product(tenantID uuid.UUID, stock int) models.Product {
	return models.Product{
		ID:                uuid.New(),
		TenantID:          tenantID,
		Name:              "Mesa de roble",
		AvailableQuantity: stock,
		UnitPrice:         decimal.NewFromInt(120),
		IsActive:          true,
	}
}

// Selling 3 of 10 leaves 7 and records a total of 300.
func TestRecordSale_Success(t *testing.T) {
	t1 := uuid.New()
	p1 := product(t1, 10)
	store := newMemStore(p1)
	svc := newTestService(store)

	res, err := svc.RecordSale(context.Background(), t1, saleInput(p1.ID, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.AvailableQuantity != 7 {
		t.Errorf("expected available 7, got %d", res.AvailableQuantity)
	}
	if store.stock(p1.ID) != 7 {
		t.Errorf("expected stored stock 7, got %d", store.stock(p1.ID))
	}
	if !res.Sale.TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected total 300, got %s", res.Sale.TotalAmount)
	}
	if !res.Sale.Profit.Equal(decimal.NewFromInt(30)) {
		t.Errorf("profit must be the caller's value, got %s", res.Sale.Profit)
	}
	if res.Sale.TenantID != t1 || res.Sale.ProductNameSnapshot != "Mesa de roble" {
		t.Errorf("unexpected record: %+v", res.Sale)
	}
	if got := len(store.salesFor(p1.ID)); got != 1 {
		t.Fatalf("expected 1 sale record, got %d", got)
	}
}

// Asking for 11 of 10 fails, reports 10 available and changes nothing.
func TestRecordSale_InsufficientStock(t *testing.T) {
	t1 := uuid.New()
	p1 := product(t1, 10)
	store := newMemStore(p1)
	svc := newTestService(store)

	_, err := svc.RecordSale(context.Background(), t1, saleInput(p1.ID, 11))
	if !errors.Is(err, salesdomain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	var stockErr *salesdomain.InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.Available != 10 {
		t.Fatalf("expected available 10 in error, got %v", err)
	}
	if store.stock(p1.ID) != 10 {
		t.Errorf("stock must stay 10, got %d", store.stock(p1.ID))
	}
	if len(store.salesFor(p1.ID)) != 0 {
		t.Error("no sale record may exist for a rejected sale")
	}
}

// Another tenant's product is not found, whatever its stock or active state.
func TestRecordSale_TenantIsolation(t *testing.T) {
	t1, t2 := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		product models.Product
	}{
		{"active with stock", product(t2, 10)},
		{"active without stock", product(t2, 0)},
		{"inactive", func() models.Product { p := product(t2, 10); p.IsActive = false; return p }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore(tt.product)
			svc := newTestService(store)

			_, err := svc.RecordSale(context.Background(), t1, saleInput(tt.product.ID, 1))
			if !errors.Is(err, salesdomain.ErrProductNotFound) {
				t.Fatalf("expected ErrProductNotFound, got %v", err)
			}
			if store.stock(tt.product.ID) != tt.product.AvailableQuantity {
				t.Error("stock of the other tenant's product must not change")
			}
		})
	}
}

func TestRecordSale_InactiveProduct(t *testing.T) {
	t1 := uuid.New()
	p := product(t1, 10)
	p.IsActive = false
	store := newMemStore(p)
	svc := newTestService(store)

	_, err := svc.RecordSale(context.Background(), t1, saleInput(p.ID, 1))
	if !errors.Is(err, salesdomain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if store.stock(p.ID) != 10 {
		t.Error("inactive product stock must not change")
	}
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.RecordSale(context.Background(), uuid.New(), saleInput(uuid.New(), 1))
	if !errors.Is(err, salesdomain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestRecordSale_InvalidInputNeverTouchesStorage(t *testing.T) {
	t1 := uuid.New()
	p1 := product(t1, 10)

	tests := []struct {
		name   string
		tenant uuid.UUID
		in     models.SaleInput
	}{
		{"missing tenant", uuid.Nil, saleInput(p1.ID, 1)},
		{"missing product", t1, saleInput(uuid.Nil, 1)},
		{"zero quantity", t1, saleInput(p1.ID, 0)},
		{"negative quantity", t1, saleInput(p1.ID, -3)},
		{"zero price", t1, func() models.SaleInput { in := saleInput(p1.ID, 1); in.UnitSalePrice = decimal.Zero; return in }()},
		{"negative profit", t1, func() models.SaleInput { in := saleInput(p1.ID, 1); in.Profit = decimal.NewFromInt(-1); return in }()},
		{"price below one cent", t1, pricedInput(p1.ID, 3, "0.004")},
		{"price with three decimals", t1, pricedInput(p1.ID, 3, "1.005")},
		{"price wider than the column", t1, pricedInput(p1.ID, 1, "123456789012.5")},
		{"total wider than the column", t1, pricedInput(p1.ID, 1000, "9999999999.99")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore(p1)
			svc := newTestService(store)

			_, err := svc.RecordSale(context.Background(), tt.tenant, tt.in)
			if !errors.Is(err, salesdomain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if store.txCount.Load() != 0 {
				t.Fatal("storage must not be touched on invalid input")
			}
		})
	}
}

func TestRecordSale_InfrastructureFailureRollsBack(t *testing.T) {
	boom := errors.New("connection reset by peer")

	tests := []struct {
		name  string
		setup func(*memStore)
	}{
		{"insert fails", func(m *memStore) { m.failInsert = boom }},
		{"commit fails", func(m *memStore) { m.failCommit = boom }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t1 := uuid.New()
			p1 := product(t1, 10)
			store := newMemStore(p1)
			tt.setup(store)
			svc := newTestService(store)

			_, err := svc.RecordSale(context.Background(), t1, saleInput(p1.ID, 3))
			if !errors.Is(err, salesdomain.ErrTransactionFailed) {
				t.Fatalf("expected ErrTransactionFailed, got %v", err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("expected cause to be preserved, got %v", err)
			}
			if store.stock(p1.ID) != 10 {
				t.Errorf("stock must be rolled back to 10, got %d", store.stock(p1.ID))
			}
			if len(store.salesFor(p1.ID)) != 0 {
				t.Error("no sale record may survive a failed transaction")
			}
		})
	}
}

func TestRecordSale_CancelledContextLeavesNoEffect(t *testing.T) {
	t1 := uuid.New()
	p1 := product(t1, 10)
	store := newMemStore(p1)
	svc := newTestService(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RecordSale(ctx, t1, saleInput(p1.ID, 3))
	if !errors.Is(err, salesdomain.ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled cause, got %v", err)
	}
	if store.stock(p1.ID) != 10 || len(store.salesFor(p1.ID)) != 0 {
		t.Fatal("cancelled sale must not leave any effect")
	}
}

// Two concurrent sales of 6 against 10, exactly one wins.
func TestRecordSale_ConcurrentOversell(t *testing.T) {
	t1 := uuid.New()
	p1 := product(t1, 10)
	store := newMemStore(p1)
	svc := newTestService(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecordSale(context.Background(), t1, saleInput(p1.ID, 6))
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
		t.Fatalf("expected exactly one success and one ErrInsufficientStock, got %d/%d", ok, short)
	}
	if store.stock(p1.ID) != 4 {
		t.Fatalf("expected ending stock 4, got %d", store.stock(p1.ID))
	}
}

// Atomicity: after many concurrent sales, stock equals initial minus the
// quantities of exactly the successful calls, and every success has one record.
func TestRecordSale_ConcurrentAtomicity(t *testing.T) {
	const initial = 100
	const calls = 60

	t1 := uuid.New()
	p1 := product(t1, initial)
	store := newMemStore(p1)
	svc := newTestService(store)

	quantities := make([]int, calls)
	rng := rand.New(rand.NewSource(42))
	for i := range quantities {
		quantities[i] = rng.Intn(5) + 1
	}

	var wg sync.WaitGroup
	var sold atomic.Int64
	var successes atomic.Int32
	for _, q := range quantities {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			_, err := svc.RecordSale(context.Background(), t1, saleInput(p1.ID, q))
			switch {
			case err == nil:
				sold.Add(int64(q))
				successes.Add(1)
			case errors.Is(err, salesdomain.ErrInsufficientStock):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(q)
	}
	wg.Wait()

	if got := store.stock(p1.ID); got != initial-int(sold.Load()) {
		t.Fatalf("stock %d != initial %d - sold %d", got, initial, sold.Load())
	}
	if got := store.stock(p1.ID); got < 0 {
		t.Fatalf("stock went negative: %d", got)
	}

	records := store.salesFor(p1.ID)
	if len(records) != int(successes.Load()) {
		t.Fatalf("expected %d records, got %d", successes.Load(), len(records))
	}
	var recorded int
	for _, r := range records {
		recorded += r.QuantitySold
	}
	if recorded != int(sold.Load()) {
		t.Fatalf("ledger quantity %d != sold %d", recorded, sold.Load())
	}
}

func TestListSales(t *testing.T) {
	t1, t2 := uuid.New(), uuid.New()
	mesa := product(t1, 1000)
	silla := product(t1, 1000)
	silla.Name = "Silla plegable"
	otherTenant := product(t2, 1000)
	store := newMemStore(mesa, silla, otherTenant)
	svc := newTestService(store)

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	record := func(tenant uuid.UUID, p models.Product, day int) {
		t.Helper()
		svc.now = func() time.Time { return base.AddDate(0, 0, day) }
		if _, err := svc.RecordSale(context.Background(), tenant, saleInput(p.ID, 1)); err != nil {
			t.Fatalf("record sale: %v", err)
		}
	}
	for day := 0; day < 12; day++ {
		record(t1, mesa, day)
	}
	record(t1, silla, 3)
	record(t2, otherTenant, 3)

	t.Run("newest first with fixed page size", func(t *testing.T) {
		page1, total, err := svc.ListSales(context.Background(), t1, models.SalesFilter{}, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 13 {
			t.Fatalf("expected total 13, got %d", total)
		}
		if len(page1) != SalesPageSize {
			t.Fatalf("expected %d records, got %d", SalesPageSize, len(page1))
		}
		for i := 1; i < len(page1); i++ {
			if page1[i].OccurredAt.After(page1[i-1].OccurredAt) {
				t.Fatal("records must be ordered newest first")
			}
		}

		page2, _, _ := svc.ListSales(context.Background(), t1, models.SalesFilter{}, 2)
		if len(page2) != 3 {
			t.Fatalf("expected 3 records on page 2, got %d", len(page2))
		}
	})

	t.Run("page below one is the first page", func(t *testing.T) {
		a, _, _ := svc.ListSales(context.Background(), t1, models.SalesFilter{}, 0)
		b, _, _ := svc.ListSales(context.Background(), t1, models.SalesFilter{}, 1)
		if len(a) != len(b) || a[0].ID != b[0].ID {
			t.Fatal("page 0 must behave as page 1")
		}
	})

	t.Run("page whose offset overflows is rejected", func(t *testing.T) {
		if _, _, err := svc.ListSales(context.Background(), t1, models.SalesFilter{}, MaxSalesPage); err != nil {
			t.Fatalf("last addressable page must be accepted, got %v", err)
		}
		_, _, err := svc.ListSales(context.Background(), t1, models.SalesFilter{}, MaxSalesPage+1)
		if !errors.Is(err, salesdomain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("inclusive date range", func(t *testing.T) {
		from := base.AddDate(0, 0, 2)
		to := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC) // day 3 must still be included
		_, total, err := svc.ListSales(context.Background(), t1, models.SalesFilter{From: &from, To: &to}, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 3 { // mesa on days 2 and 3, silla on day 3
			t.Fatalf("expected 3 records in range, got %d", total)
		}
	})

	t.Run("text match on product name", func(t *testing.T) {
		recs, total, _ := svc.ListSales(context.Background(), t1, models.SalesFilter{Query: "SILLA"}, 1)
		if total != 1 || recs[0].ProductNameSnapshot != "Silla plegable" {
			t.Fatalf("expected the single silla sale, got %d", total)
		}
	})

	t.Run("other tenant sees only its own sales", func(t *testing.T) {
		_, total, _ := svc.ListSales(context.Background(), t2, models.SalesFilter{}, 1)
		if total != 1 {
			t.Fatalf("expected 1 record for tenant 2, got %d", total)
		}
	})

	t.Run("idempotent read", func(t *testing.T) {
		f := models.SalesFilter{Query: "mesa"}
		a, totalA, _ := svc.ListSales(context.Background(), t1, f, 1)
		b, totalB, _ := svc.ListSales(context.Background(), t1, f, 1)
		if totalA != totalB || len(a) != len(b) {
			t.Fatal("repeated reads must agree")
		}
		for i := range a {
			if a[i].ID != b[i].ID {
				t.Fatalf("record %d differs between reads", i)
			}
		}
	})

	t.Run("reversed range is invalid", func(t *testing.T) {
		from := base.AddDate(0, 0, 5)
		to := base
		_, _, err := svc.ListSales(context.Background(), t1, models.SalesFilter{From: &from, To: &to}, 1)
		if !errors.Is(err, salesdomain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
