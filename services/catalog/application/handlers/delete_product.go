package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/catalog/application/services"
)

// DeleteProductHandler handles DELETE /products/admin/{id} requests.
type DeleteProductHandler struct {
	svc *appsvcs.Services
}

// NewDeleteProductHandler returns a DeleteProductHandler backed by the given services.
func NewDeleteProductHandler(svc *appsvcs.Services) *DeleteProductHandler {
	return &DeleteProductHandler{svc: svc}
}

// Execute deletes a product of the caller's business.
//
//	@Summary		Delete product
//	@Tags			products
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Product ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/admin/{id} [delete]
func (h *DeleteProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Product.Delete(r.Context(), tenantID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
