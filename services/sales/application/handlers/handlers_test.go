package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/config"
	"github.com/ghuser/vitrina/pkg/logger"
	appsvcs "github.com/ghuser/vitrina/services/sales/application/services"
	salesdomain "github.com/ghuser/vitrina/services/sales/domain"
	"github.com/ghuser/vitrina/services/sales/domain/models"
	"github.com/ghuser/vitrina/services/sales/domain/repositories"
)

// stubRepo is a single-lock SaleRepository good enough for HTTP-level tests.
type stubRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
	sales    []*models.SaleRecord

	lastFilter models.SalesFilter
	lastOpts   repositories.QueryOpts
}

func (s *stubRepo) WithinTx(ctx context.Context, fn func(tx repositories.SaleTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &stubTx{repo: s, products: make(map[uuid.UUID]models.Product)}
	for id, p := range s.products {
		tx.products[id] = p
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.products = tx.products
	s.sales = append(s.sales, tx.sales...)
	return nil
}

func (s *stubRepo) QuerySales(_ context.Context, tenantID uuid.UUID, f models.SalesFilter, opts repositories.QueryOpts) ([]*models.SaleRecord, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter, s.lastOpts = f, opts
	var out []*models.SaleRecord
	for _, r := range s.sales {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

type stubTx struct {
	repo     *stubRepo
	products map[uuid.UUID]models.Product
	sales    []*models.SaleRecord
}

func (t *stubTx) FindActiveProduct(_ context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	p, ok := t.products[productID]
	if !ok || p.TenantID != tenantID || !p.IsActive {
		return nil, salesdomain.ErrProductNotFound
	}
	return &p, nil
}

func (t *stubTx) SaveProductStock(_ context.Context, p *models.Product) error {
	t.products[p.ID] = *p
	return nil
}

func (t *stubTx) InsertSaleRecord(_ context.Context, r *models.SaleRecord) error {
	t.sales = append(t.sales, r)
	return nil
}

type fixture struct {
	repo    *stubRepo
	router  chi.Router
	tenant  uuid.UUID
	product uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tenant, productID := uuid.New(), uuid.New()
	repo := &stubRepo{products: map[uuid.UUID]models.Product{
		productID: {
			ID:                productID,
			TenantID:          tenant,
			Name:              "Mesa de roble",
			AvailableQuantity: 10,
			UnitPrice:         decimal.NewFromInt(100),
			IsActive:          true,
		},
	}}
	svcs := &appsvcs.Services{
		Sale: appsvcs.NewSaleService(repo, logger.New(&config.Config{LogLevel: "error"})),
	}

	r := chi.NewRouter()
	r.Route("/sales", func(r chi.Router) {
		r.Get("/", NewListSalesHandler(svcs).Execute)
		r.Post("/{productId}", NewPostSaleHandler(svcs).Execute)
	})
	return &fixture{repo: repo, router: r, tenant: tenant, product: productID}
}

func (f *fixture) do(t *testing.T, tenant uuid.UUID, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if tenant != uuid.Nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{
			AdminID:  uuid.New(),
			TenantID: tenant,
			Role:     auth.RoleOwner,
		}))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestPostSale(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, f.tenant, http.MethodPost, "/sales/"+f.product.String(),
		`{"quantity": 3, "unit_sale_price": 100, "profit": 90}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp RecordSaleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Product.AvailableQuantity != 7 {
		t.Errorf("available_quantity = %d, want 7", resp.Product.AvailableQuantity)
	}
	if resp.Product.Name != "Mesa de roble" || resp.Sale.ProductName != "Mesa de roble" {
		t.Errorf("unexpected names: %+v", resp)
	}
	if !resp.Sale.TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("total_amount = %s, want 300", resp.Sale.TotalAmount)
	}
	if !resp.Sale.Profit.Equal(decimal.NewFromInt(90)) {
		t.Errorf("profit = %s, want 90", resp.Sale.Profit)
	}
}

func TestPostSale_Errors(t *testing.T) {
	tests := []struct {
		name       string
		tenant     func(f *fixture) uuid.UUID
		path       func(f *fixture) string
		body       string
		wantStatus int
		wantInBody string
	}{
		{
			name:       "insufficient stock",
			body:       `{"quantity": 11, "unit_sale_price": 100, "profit": 0}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: `"available":10`,
		},
		{
			name:       "zero quantity",
			body:       `{"quantity": 0, "unit_sale_price": 100, "profit": 0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative profit",
			body:       `{"quantity": 1, "unit_sale_price": 100, "profit": -1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "price finer than cents",
			body:       `{"quantity": 3, "unit_sale_price": 1.005, "profit": 0}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: "decimal places",
		},
		{
			name:       "price wider than storage",
			body:       `{"quantity": 1, "unit_sale_price": 123456789012.5, "profit": 0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing price",
			body:       `{"quantity": 1, "profit": 0}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: "unit_sale_price",
		},
		{
			name:       "malformed json",
			body:       `{"quantity": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad product id",
			path:       func(*fixture) string { return "/sales/not-a-uuid" },
			body:       `{"quantity": 1, "unit_sale_price": 100, "profit": 0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown product",
			path:       func(*fixture) string { return "/sales/" + uuid.NewString() },
			body:       `{"quantity": 1, "unit_sale_price": 100, "profit": 0}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "other tenant",
			tenant:     func(*fixture) uuid.UUID { return uuid.New() },
			body:       `{"quantity": 1, "unit_sale_price": 100, "profit": 0}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no principal",
			tenant:     func(*fixture) uuid.UUID { return uuid.Nil },
			body:       `{"quantity": 1, "unit_sale_price": 100, "profit": 0}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tenant := f.tenant
			if tt.tenant != nil {
				tenant = tt.tenant(f)
			}
			path := "/sales/" + f.product.String()
			if tt.path != nil {
				path = tt.path(f)
			}

			w := f.do(t, tenant, http.MethodPost, path, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantInBody != "" && !strings.Contains(w.Body.String(), tt.wantInBody) {
				t.Errorf("expected %q in body, got %s", tt.wantInBody, w.Body.String())
			}
			if got := f.repo.products[f.product].AvailableQuantity; got != 10 {
				t.Errorf("stock changed on a failed sale: %d", got)
			}
			if len(f.repo.sales) != 0 {
				t.Errorf("sale recorded on a failed request")
			}
		})
	}
}

func TestListSales(t *testing.T) {
	f := newFixture(t)
	for range 3 {
		w := f.do(t, f.tenant, http.MethodPost, "/sales/"+f.product.String(),
			`{"quantity": 1, "unit_sale_price": 100, "profit": 10}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed sale: %d %s", w.Code, w.Body.String())
		}
	}

	w := f.do(t, f.tenant, http.MethodGet, "/sales?from=2025-03-01&to=2025-03-31&q=mesa&page=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ListSalesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sales) != 3 || resp.Pagination.Total != 3 {
		t.Errorf("unexpected listing: %d sales, total %d", len(resp.Sales), resp.Pagination.Total)
	}
	if resp.Pagination.Page != 2 || resp.Pagination.Limit != 10 || resp.Pagination.Pages != 1 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}

	if f.repo.lastOpts.Offset != 10 || f.repo.lastOpts.Limit != 10 {
		t.Errorf("page 2 should query offset 10, got %+v", f.repo.lastOpts)
	}
	wantFrom := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if f.repo.lastFilter.From == nil || !f.repo.lastFilter.From.Equal(wantFrom) {
		t.Errorf("from not parsed: %v", f.repo.lastFilter.From)
	}
	if f.repo.lastFilter.Query != "mesa" {
		t.Errorf("query = %q", f.repo.lastFilter.Query)
	}
}

func TestListSales_BadParams(t *testing.T) {
	f := newFixture(t)
	for _, target := range []string{
		"/sales?from=01-03-2025",
		"/sales?to=2025-13-01",
		"/sales?page=two",
		"/sales?page=" + strconv.Itoa(appsvcs.MaxSalesPage+1),
		"/sales?from=2025-03-31&to=2025-03-01",
	} {
		t.Run(target, func(t *testing.T) {
			w := f.do(t, f.tenant, http.MethodGet, target, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
