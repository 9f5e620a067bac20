package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vitrina/services/catalog/domain/models"
)

// ProductResponse is the JSON shape of a product.
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"                 example:"123e4567-e89b-12d3-a456-426614174000"`
	BusinessID        uuid.UUID       `json:"business_id"        example:"550e8400-e29b-41d4-a716-446655440000"`
	Title             string          `json:"title"              example:"Mesa de roble"`
	Description       string          `json:"description"        example:"Mesa maciza de 120x80"`
	Price             decimal.Decimal `json:"price"              swaggertype:"number" example:"450.00"`
	Images            []string        `json:"images"`
	Category          string          `json:"category"           example:"mesas"`
	AvailableQuantity int             `json:"available_quantity" example:"7"`
	IsActive          bool            `json:"is_active"          example:"true"`
	CreatedAt         time.Time       `json:"created_at"         example:"2024-01-15T10:30:00Z"`
	UpdatedAt         time.Time       `json:"updated_at"         example:"2024-01-15T10:30:00Z"`
} // @name ProductResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"product not found"`
} // @name ErrorResponse

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		BusinessID:        p.BusinessID,
		Title:             p.Title.String(),
		Description:       p.Description,
		Price:             p.Price,
		Images:            p.Images,
		Category:          p.Category,
		AvailableQuantity: p.AvailableQuantity,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toProductResponses(ps []*models.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = toProductResponse(p)
	}
	return out
}
