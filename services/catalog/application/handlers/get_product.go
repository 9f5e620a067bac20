package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/catalog/application/services"
)

// GetProductHandler handles GET /products/{id} requests.
type GetProductHandler struct {
	svc *appsvcs.Services
}

// NewGetProductHandler returns a GetProductHandler backed by the given services.
func NewGetProductHandler(svc *appsvcs.Services) *GetProductHandler {
	return &GetProductHandler{svc: svc}
}

// Execute returns one active product.
//
//	@Summary		Get product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	ProductResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (h *GetProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.svc.Product.GetPublic(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(p))
}
