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
	appsvcs "github.com/ghuser/vitrina/services/catalog/application/services"
	"github.com/ghuser/vitrina/services/catalog/domain/models"
)

// UpdateProductRequest is the request body for PUT /products/admin/{id}.
// Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Title             *string          `json:"title"              validate:"omitempty,max=200" example:"Mesa de roble"`
	Description       *string          `json:"description"        validate:"omitempty,max=5000"`
	Price             *decimal.Decimal `json:"price"                                           swaggertype:"number" example:"450.00"`
	Images            []string         `json:"images"             validate:"omitempty,max=10,dive,url"`
	Category          *string          `json:"category"           validate:"omitempty,max=100"`
	AvailableQuantity *int             `json:"available_quantity" validate:"omitempty,gte=0"   example:"20"`
	IsActive          *bool            `json:"is_active"                                       example:"false"`
} // @name UpdateProductRequest

// PutProductHandler handles PUT /products/admin/{id} requests.
type PutProductHandler struct {
	svc *appsvcs.Services
}

// NewPutProductHandler returns a PutProductHandler backed by the given services.
func NewPutProductHandler(svc *appsvcs.Services) *PutProductHandler {
	return &PutProductHandler{svc: svc}
}

// Execute partially updates a product of the caller's business.
//
//	@Summary		Update product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Product ID"
//	@Param			request	body		UpdateProductRequest	true	"Fields to change"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/admin/{id} [put]
func (h *PutProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateProductRequest](w, r)
	if !ok {
		return
	}

	p, err := h.svc.Product.Update(r.Context(), tenantID, id, models.ProductPatch{
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		Images:            req.Images,
		Category:          req.Category,
		AvailableQuantity: req.AvailableQuantity,
		IsActive:          req.IsActive,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(p))
}
