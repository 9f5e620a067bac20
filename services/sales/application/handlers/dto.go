package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vitrina/pkg/httpx"
	"github.com/ghuser/vitrina/services/sales/domain/models"
)

// SaleResponse is the JSON shape of a sale record.
type SaleResponse struct {
	ID            uuid.UUID       `json:"id"              example:"01912b4e-7c1a-7def-8000-4f2a1c3d5e6f"`
	ProductID     uuid.UUID       `json:"product_id"      example:"123e4567-e89b-12d3-a456-426614174000"`
	ProductName   string          `json:"product_name"    example:"Mesa de roble"`
	QuantitySold  int             `json:"quantity_sold"   example:"3"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price" swaggertype:"number" example:"100.00"`
	TotalAmount   decimal.Decimal `json:"total_amount"    swaggertype:"number" example:"300.00"`
	Profit        decimal.Decimal `json:"profit"          swaggertype:"number" example:"90.00"`
	OccurredAt    time.Time       `json:"occurred_at"     example:"2024-01-15T10:30:00Z"`
} // @name SaleResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"insufficient stock"`
} // @name ErrorResponse

// ListSalesResponse is one page of the sales ledger.
type ListSalesResponse struct {
	Sales      []SaleResponse   `json:"sales"`
	Pagination httpx.Pagination `json:"pagination"`
} // @name ListSalesResponse

func toSaleResponse(s *models.SaleRecord) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductNameSnapshot,
		QuantitySold:  s.QuantitySold,
		UnitSalePrice: s.UnitSalePrice,
		TotalAmount:   s.TotalAmount,
		Profit:        s.Profit,
		OccurredAt:    s.OccurredAt,
	}
}
