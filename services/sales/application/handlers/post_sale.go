package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	pkgvalidator "github.com/ghuser/vitrina/pkg/validator"
	appsvcs "github.com/ghuser/vitrina/services/sales/application/services"
	"github.com/ghuser/vitrina/services/sales/domain/models"
)

// RecordSaleRequest is the request body for POST /sales/{productId}.
// Ranges are enforced by the sale service so every caller gets the same rules.
type RecordSaleRequest struct {
	Quantity      *int             `json:"quantity"        validate:"required" example:"3"`
	UnitSalePrice *decimal.Decimal `json:"unit_sale_price" validate:"required" swaggertype:"number" example:"100.00"`
	Profit        *decimal.Decimal `json:"profit"          validate:"required" swaggertype:"number" example:"90.00"`
} // @name RecordSaleRequest

// SoldProduct is the product state after a sale.
type SoldProduct struct {
	ID                uuid.UUID `json:"id"                 example:"123e4567-e89b-12d3-a456-426614174000"`
	Name              string    `json:"name"               example:"Mesa de roble"`
	AvailableQuantity int       `json:"available_quantity" example:"7"`
} // @name SoldProduct

// RecordSaleResponse is returned on a successful sale.
type RecordSaleResponse struct {
	Sale    SaleResponse `json:"sale"`
	Product SoldProduct  `json:"product"`
} // @name RecordSaleResponse

// PostSaleHandler handles POST /sales/{productId} requests.
type PostSaleHandler struct {
	svc *appsvcs.Services
}

// NewPostSaleHandler returns a PostSaleHandler backed by the given services.
func NewPostSaleHandler(svc *appsvcs.Services) *PostSaleHandler {
	return &PostSaleHandler{svc: svc}
}

// Execute records a sale for the caller's business.
//
//	@Summary		Record sale
//	@Description	Atomically decrements stock and appends a sale record
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			productId	path		string				true	"Product ID"
//	@Param			request		body		RecordSaleRequest	true	"Sale"
//	@Success		201			{object}	RecordSaleResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/sales/{productId} [post]
func (h *PostSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RecordSaleRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Sale.RecordSale(r.Context(), tenantID, models.SaleInput{
		ProductID:     productID,
		Quantity:      *req.Quantity,
		UnitSalePrice: *req.UnitSalePrice,
		Profit:        *req.Profit,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, RecordSaleResponse{
		Sale: toSaleResponse(res.Sale),
		Product: SoldProduct{
			ID:                res.Sale.ProductID,
			Name:              res.ProductName,
			AvailableQuantity: res.AvailableQuantity,
		},
	})
}
