package handlers

import (
	"net/http"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/catalog/application/services"
)

// ListAdminProductsHandler handles GET /products/admin requests.
type ListAdminProductsHandler struct {
	svc *appsvcs.Services
}

// NewListAdminProductsHandler returns a ListAdminProductsHandler backed by the given services.
func NewListAdminProductsHandler(svc *appsvcs.Services) *ListAdminProductsHandler {
	return &ListAdminProductsHandler{svc: svc}
}

// Execute lists every product of the caller's business.
//
//	@Summary		List own products
//	@Tags			products
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		ProductResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/products/admin [get]
func (h *ListAdminProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	products, err := h.svc.Product.ListAdmin(r.Context(), tenantID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}
