package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/vitrina/pkg/logger"
	salesdomain "github.com/ghuser/vitrina/services/sales/domain"
	"github.com/ghuser/vitrina/services/sales/domain/models"
	"github.com/ghuser/vitrina/services/sales/domain/repositories"
)

// SalesPageSize is the fixed page size of the sales ledger listing.
const SalesPageSize = 10

// MaxSalesPage is the highest page whose offset fits in an int.
const MaxSalesPage = math.MaxInt/SalesPageSize + 1

// SaleResult is returned by RecordSale on success.
type SaleResult struct {
	Sale              *models.SaleRecord
	ProductName       string
	AvailableQuantity int // product stock after the sale committed
}

// SaleService records sales and queries the sales ledger.
// It holds no mutable state; concurrent sales of one product are serialized
// by the row lock taken in SaleTx.FindActiveProduct.
type SaleService struct {
	repo     repositories.SaleRepository
	log      logger.Logger
	now      func() time.Time
	recorded metric.Int64Counter
	rejected metric.Int64Counter
}

// NewSaleService returns a SaleService wired with the given repository.
func NewSaleService(repo repositories.SaleRepository, log logger.Logger) *SaleService {
	meter := otel.Meter("github.com/ghuser/vitrina/services/sales")
	recorded, _ := meter.Int64Counter("sales.recorded",
		metric.WithDescription("Sales committed to the ledger"))
	rejected, _ := meter.Int64Counter("sales.rejected",
		metric.WithDescription("Sales rejected, by reason"))

	return &SaleService{
		repo:     repo,
		log:      log,
		now:      time.Now,
		recorded: recorded,
		rejected: rejected,
	}
}

// RecordSale sells in.Quantity units of in.ProductID on behalf of tenantID.
// Stock decrement and ledger insert run in one transaction: both commit or
// neither does. Business failures (ErrInvalidInput, ErrProductNotFound,
// ErrInsufficientStock) are returned as-is; anything else that aborts the
// transaction is reported as ErrTransactionFailed. No retry is attempted.
func (s *SaleService) RecordSale(ctx context.Context, tenantID uuid.UUID, in models.SaleInput) (*SaleResult, error) {
	ctx, span := otel.Tracer("sales").Start(ctx, "sales.RecordSale")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("product_id", in.ProductID.String()),
		attribute.Int("quantity", in.Quantity),
	)

	if err := in.Validate(tenantID); err != nil {
		s.reject(ctx, "invalid_input")
		return nil, fmt.Errorf("%w: %w", salesdomain.ErrInvalidInput, err)
	}

	var result *SaleResult
	err := s.repo.WithinTx(ctx, func(tx repositories.SaleTx) error {
		product, err := tx.FindActiveProduct(ctx, tenantID, in.ProductID)
		if err != nil {
			return err
		}

		if in.Quantity > product.AvailableQuantity {
			return &salesdomain.InsufficientStockError{
				Available: product.AvailableQuantity,
				Requested: in.Quantity,
			}
		}

		if err := product.Decrement(in.Quantity); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if err := tx.SaveProductStock(ctx, product); err != nil {
			return fmt.Errorf("save product stock: %w", err)
		}

		record, err := models.NewSaleRecord(tenantID, product, in, s.now())
		if err != nil {
			return err
		}
		if err := tx.InsertSaleRecord(ctx, record); err != nil {
			return fmt.Errorf("insert sale record: %w", err)
		}

		result = &SaleResult{
			Sale:              record,
			ProductName:       product.Name,
			AvailableQuantity: product.AvailableQuantity,
		}
		return nil
	})
	if err != nil {
		if salesdomain.IsBusinessError(err) {
			s.reject(ctx, rejectReason(err))
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "sale transaction failed")
		s.reject(ctx, "transaction_failed")
		s.log.ErrorContext(ctx, "sale transaction aborted",
			"tenant_id", tenantID, "product_id", in.ProductID, "error", err)
		return nil, fmt.Errorf("%w: %w", salesdomain.ErrTransactionFailed, err)
	}

	s.recorded.Add(ctx, 1)
	s.log.InfoContext(ctx, "sale recorded",
		"sale_id", result.Sale.ID,
		"tenant_id", tenantID,
		"product_id", in.ProductID,
		"quantity", in.Quantity,
		"available_quantity", result.AvailableQuantity,
	)
	return result, nil
}

// ListSales returns one fixed-size page of the tenant's sales, newest first,
// and the total number of matching records. Pages start at 1; smaller values
// are treated as 1 and pages past MaxSalesPage are rejected.
func (s *SaleService) ListSales(ctx context.Context, tenantID uuid.UUID, filter models.SalesFilter, page int) ([]*models.SaleRecord, int, error) {
	if tenantID == uuid.Nil {
		return nil, 0, fmt.Errorf("%w: tenant is required", salesdomain.ErrInvalidInput)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, fmt.Errorf("%w: 'to' must not be before 'from'", salesdomain.ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}
	if page > MaxSalesPage {
		return nil, 0, fmt.Errorf("%w: page must not exceed %d", salesdomain.ErrInvalidInput, MaxSalesPage)
	}

	records, total, err := s.repo.QuerySales(ctx, tenantID, filter, repositories.QueryOpts{
		Limit:  SalesPageSize,
		Offset: (page - 1) * SalesPageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	return records, total, nil
}

func (s *SaleService) reject(ctx context.Context, reason string) {
	s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, salesdomain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, salesdomain.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, salesdomain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "other"
	}
}
