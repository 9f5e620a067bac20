package handlers

import (
	"net/http"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/identity/application/services"
)

// LogoutHandler handles POST /auth/admin/logout requests.
type LogoutHandler struct {
	svc *appsvcs.Services
}

// NewLogoutHandler returns a LogoutHandler backed by the given services.
func NewLogoutHandler(svc *appsvcs.Services) *LogoutHandler {
	return &LogoutHandler{svc: svc}
}

// Execute revokes the bearer token used for this request.
//
//	@Summary		Admin logout
//	@Tags			auth
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Router			/auth/admin/logout [post]
func (h *LogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.svc.Identity.Logout(r.Context(), p); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
