package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	pkgvalidator "github.com/ghuser/vitrina/pkg/validator"
	appsvcs "github.com/ghuser/vitrina/services/quote/application/services"
	"github.com/ghuser/vitrina/services/quote/domain/models"
)

// CreateQuoteRequest is the request body for POST /quotes.
type CreateQuoteRequest struct {
	BusinessID    string `json:"business_id"    validate:"required,uuid"       example:"6f1c2a9e-1b7d-4c55-9a3e-2d9b8f0e4a11"`
	ProductID     string `json:"product_id"     validate:"omitempty,uuid"      example:"123e4567-e89b-12d3-a456-426614174000"`
	CustomerName  string `json:"customer_name"  validate:"required,max=200"    example:"Luis"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"     example:"luis@mail.test"`
	CustomerPhone string `json:"customer_phone" validate:"max=50"              example:"+34 600 000 000"`
	Message       string `json:"message"        validate:"max=5000"`
	Quantity      int    `json:"quantity"       validate:"omitempty,gte=1"     example:"1"`
} // @name CreateQuoteRequest

// PostQuoteHandler handles POST /quotes requests.
type PostQuoteHandler struct {
	svc *appsvcs.Services
}

// NewPostQuoteHandler returns a PostQuoteHandler backed by the given services.
func NewPostQuoteHandler(svc *appsvcs.Services) *PostQuoteHandler {
	return &PostQuoteHandler{svc: svc}
}

// Execute submits a quote request to a business.
//
//	@Summary		Request a quote
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateQuoteRequest	true	"Quote"
//	@Success		201		{object}	QuoteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/quotes [post]
func (h *PostQuoteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateQuoteRequest](w, r)
	if !ok {
		return
	}

	in := models.QuoteRequest{
		BusinessID:    uuid.MustParse(req.BusinessID),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Message:       req.Message,
		Quantity:      req.Quantity,
	}
	if req.ProductID != "" {
		id := uuid.MustParse(req.ProductID)
		in.ProductID = &id
	}

	q, err := h.svc.Quote.Create(r.Context(), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toQuoteResponse(q))
}
