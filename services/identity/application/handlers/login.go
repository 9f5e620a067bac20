package handlers

import (
	"net/http"

	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	pkgvalidator "github.com/ghuser/vitrina/pkg/validator"
	appsvcs "github.com/ghuser/vitrina/services/identity/application/services"
)

// LoginRequest is the request body for POST /auth/admin/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required" example:"ana@luna.test"`
	Password string `json:"password" validate:"required" example:"secreto"`
} // @name LoginRequest

// LoginHandler handles POST /auth/admin/login requests.
type LoginHandler struct {
	svc *appsvcs.Services
}

// NewLoginHandler returns a LoginHandler backed by the given services.
func NewLoginHandler(svc *appsvcs.Services) *LoginHandler {
	return &LoginHandler{svc: svc}
}

// Execute exchanges admin credentials for a bearer token.
//
//	@Summary		Admin login
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/auth/admin/login [post]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	sess, err := h.svc.Identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(sess))
}
