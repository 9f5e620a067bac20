package handlers

import (
	"net/http"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/quote/application/services"
)

// ListQuotesHandler handles GET /quotes/admin requests.
type ListQuotesHandler struct {
	svc *appsvcs.Services
}

// NewListQuotesHandler returns a ListQuotesHandler backed by the given services.
func NewListQuotesHandler(svc *appsvcs.Services) *ListQuotesHandler {
	return &ListQuotesHandler{svc: svc}
}

// Execute lists the caller's quotes, newest first.
//
//	@Summary		List quotes
//	@Tags			quotes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status	query		string	false	"new, in_progress or closed"
//	@Success		200		{array}		QuoteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/quotes/admin [get]
func (h *ListQuotesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	quotes, err := h.svc.Quote.List(r.Context(), tenantID, r.URL.Query().Get("status"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		resp[i] = toQuoteResponse(q)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
