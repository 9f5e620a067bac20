package handlers

import (
	"net/http"

	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	pkgvalidator "github.com/ghuser/vitrina/pkg/validator"
	appsvcs "github.com/ghuser/vitrina/services/identity/application/services"
	"github.com/ghuser/vitrina/services/identity/domain/models"
)

// RegisterOwnerRequest is the request body for POST /auth/admin/register-owner.
type RegisterOwnerRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=200" example:"Carpintería Luna"`
	Name         string `json:"name"          validate:"required,max=200" example:"Ana"`
	Email        string `json:"email"         validate:"required,email"   example:"ana@luna.test"`
	Password     string `json:"password"      validate:"required,min=6"   example:"secreto"`
	Phone        string `json:"phone"         validate:"max=50"`
	Address      string `json:"address"       validate:"max=500"`
} // @name RegisterOwnerRequest

// RegisterOwnerHandler handles POST /auth/admin/register-owner requests.
type RegisterOwnerHandler struct {
	svc *appsvcs.Services
}

// NewRegisterOwnerHandler returns a RegisterOwnerHandler backed by the given services.
func NewRegisterOwnerHandler(svc *appsvcs.Services) *RegisterOwnerHandler {
	return &RegisterOwnerHandler{svc: svc}
}

// Execute registers a new business and its owner.
//
//	@Summary		Register business owner
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterOwnerRequest	true	"Registration"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/auth/admin/register-owner [post]
func (h *RegisterOwnerHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterOwnerRequest](w, r)
	if !ok {
		return
	}

	sess, err := h.svc.Identity.RegisterOwner(r.Context(), models.Registration{
		BusinessName: req.BusinessName,
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toSessionResponse(sess))
}
