package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	pkgvalidator "github.com/ghuser/vitrina/pkg/validator"
	appsvcs "github.com/ghuser/vitrina/services/catalog/application/services"
	"github.com/ghuser/vitrina/services/catalog/domain/models"
)

// CreateProductRequest is the request body for POST /products/admin.
type CreateProductRequest struct {
	Title             string           `json:"title"              validate:"required,max=200" example:"Mesa de roble"`
	Description       string           `json:"description"        validate:"max=5000"         example:"Mesa maciza de 120x80"`
	Price             *decimal.Decimal `json:"price"              validate:"required"         swaggertype:"number" example:"450.00"`
	Images            []string         `json:"images"             validate:"max=10,dive,url"`
	Category          string           `json:"category"           validate:"max=100"          example:"mesas"`
	AvailableQuantity int              `json:"available_quantity" validate:"gte=0"            example:"7"`
	IsActive          *bool            `json:"is_active"                                      example:"true"`
} // @name CreateProductRequest

// PostProductHandler handles POST /products/admin requests.
type PostProductHandler struct {
	svc *appsvcs.Services
}

// NewPostProductHandler returns a PostProductHandler backed by the given services.
func NewPostProductHandler(svc *appsvcs.Services) *PostProductHandler {
	return &PostProductHandler{svc: svc}
}

// Execute creates a product in the caller's business.
//
//	@Summary		Create product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateProductRequest	true	"Product"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Router			/products/admin [post]
func (h *PostProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateProductRequest](w, r)
	if !ok {
		return
	}

	p, err := h.svc.Product.Create(r.Context(), tenantID, models.ProductDraft{
		Title:             req.Title,
		Description:       req.Description,
		Price:             *req.Price,
		Images:            req.Images,
		Category:          req.Category,
		AvailableQuantity: req.AvailableQuantity,
		IsActive:          req.IsActive,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toProductResponse(p))
}
