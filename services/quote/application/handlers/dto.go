package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/quote/domain/models"
)

// QuoteResponse is the JSON shape of a quote.
type QuoteResponse struct {
	ID            uuid.UUID  `json:"id"             example:"123e4567-e89b-12d3-a456-426614174000"`
	BusinessID    uuid.UUID  `json:"business_id"    example:"6f1c2a9e-1b7d-4c55-9a3e-2d9b8f0e4a11"`
	ProductID     *uuid.UUID `json:"product_id"`
	CustomerName  string     `json:"customer_name"  example:"Luis"`
	CustomerEmail string     `json:"customer_email" example:"luis@mail.test"`
	CustomerPhone string     `json:"customer_phone" example:"+34 600 000 000"`
	Message       string     `json:"message"        example:"¿Podría hacerla de 150 cm?"`
	Quantity      int        `json:"quantity"       example:"1"`
	Status        string     `json:"status"         example:"new"`
	CreatedAt     time.Time  `json:"created_at"     example:"2024-01-15T10:30:00Z"`
	UpdatedAt     time.Time  `json:"updated_at"     example:"2024-01-15T10:30:00Z"`
} // @name QuoteResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"quote not found"`
} // @name ErrorResponse

func toQuoteResponse(q *models.Quote) QuoteResponse {
	return QuoteResponse{
		ID:            q.ID,
		BusinessID:    q.BusinessID,
		ProductID:     q.ProductID,
		CustomerName:  q.CustomerName,
		CustomerEmail: q.CustomerEmail,
		CustomerPhone: q.CustomerPhone,
		Message:       q.Message,
		Quantity:      q.Quantity,
		Status:        string(q.Status),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
