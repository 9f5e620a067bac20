package handlers

import (
	"net/http"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	pkgvalidator "github.com/ghuser/vitrina/pkg/validator"
	appsvcs "github.com/ghuser/vitrina/services/setting/application/services"
	"github.com/ghuser/vitrina/services/setting/domain/models"
)

// UpdateSettingRequest is the request body for PUT /settings/admin.
// Omitted fields keep their current value.
type UpdateSettingRequest struct {
	BannerImageURL *string `json:"banner_image_url" validate:"omitempty,max=2048" example:"https://cdn.example.com/banner.jpg"`
	HeroTitle      *string `json:"hero_title"       validate:"omitempty,max=300"  example:"Hecho a tu medida"`
	HeroSubtitle   *string `json:"hero_subtitle"    validate:"omitempty,max=300"  example:"Muebles a medida con calidad artesanal"`
} // @name UpdateSettingRequest

// PutSettingHandler handles PUT /settings/admin requests.
type PutSettingHandler struct {
	svc *appsvcs.Services
}

// NewPutSettingHandler returns a PutSettingHandler backed by the given services.
func NewPutSettingHandler(svc *appsvcs.Services) *PutSettingHandler {
	return &PutSettingHandler{svc: svc}
}

// Execute updates the caller's storefront settings.
//
//	@Summary		Update storefront settings
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		UpdateSettingRequest	true	"Settings"
//	@Success		200		{object}	SettingResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/settings/admin [put]
func (h *PutSettingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateSettingRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Setting.Update(r.Context(), tenantID, models.SettingPatch{
		BannerImageURL: req.BannerImageURL,
		HeroTitle:      req.HeroTitle,
		HeroSubtitle:   req.HeroSubtitle,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSettingResponse(s))
}
