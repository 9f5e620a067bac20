package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/catalog/application/services"
	"github.com/ghuser/vitrina/services/catalog/domain/repositories"
)

// ListProductsHandler handles GET /products requests.
type ListProductsHandler struct {
	svc *appsvcs.Services
}

// NewListProductsHandler returns a ListProductsHandler backed by the given services.
func NewListProductsHandler(svc *appsvcs.Services) *ListProductsHandler {
	return &ListProductsHandler{svc: svc}
}

// Execute lists the active products of one business.
//
//	@Summary		List products
//	@Description	Active products of a business, newest first
//	@Tags			products
//	@Produce		json
//	@Param			business_id	query		string	true	"Business ID"
//	@Param			q			query		string	false	"Title search"
//	@Param			category	query		string	false	"Category"
//	@Success		200			{array}		ProductResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products [get]
func (h *ListProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	businessID, err := uuid.Parse(q.Get("business_id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "business_id must be a valid UUID")
		return
	}

	products, err := h.svc.Product.ListPublic(r.Context(), businessID, repositories.PublicFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}
