package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/setting/application/services"
)

// GetSettingHandler handles GET /settings requests.
type GetSettingHandler struct {
	svc *appsvcs.Services
}

// NewGetSettingHandler returns a GetSettingHandler backed by the given services.
func NewGetSettingHandler(svc *appsvcs.Services) *GetSettingHandler {
	return &GetSettingHandler{svc: svc}
}

// Execute returns a business's storefront settings.
//
//	@Summary		Get storefront settings
//	@Tags			settings
//	@Produce		json
//	@Param			business_id	query		string	true	"Business ID"
//	@Success		200			{object}	SettingResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/settings [get]
func (h *GetSettingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(r.URL.Query().Get("business_id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "business_id query parameter must be a valid UUID")
		return
	}

	s, err := h.svc.Setting.Get(r.Context(), businessID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSettingResponse(s))
}
