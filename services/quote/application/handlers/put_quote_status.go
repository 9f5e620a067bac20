package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	pkgvalidator "github.com/ghuser/vitrina/pkg/validator"
	appsvcs "github.com/ghuser/vitrina/services/quote/application/services"
)

// UpdateQuoteStatusRequest is the request body for PUT /quotes/admin/{id}/status.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required" example:"in_progress"`
} // @name UpdateQuoteStatusRequest

// PutQuoteStatusHandler handles PUT /quotes/admin/{id}/status requests.
type PutQuoteStatusHandler struct {
	svc *appsvcs.Services
}

// NewPutQuoteStatusHandler returns a PutQuoteStatusHandler backed by the given services.
func NewPutQuoteStatusHandler(svc *appsvcs.Services) *PutQuoteStatusHandler {
	return &PutQuoteStatusHandler{svc: svc}
}

// Execute changes the status of one of the caller's quotes.
//
//	@Summary		Update quote status
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Quote ID"
//	@Param			request	body		UpdateQuoteStatusRequest	true	"Status"
//	@Success		200		{object}	QuoteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/quotes/admin/{id}/status [put]
func (h *PutQuoteStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateQuoteStatusRequest](w, r)
	if !ok {
		return
	}

	q, err := h.svc.Quote.UpdateStatus(r.Context(), tenantID, id, req.Status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toQuoteResponse(q))
}
