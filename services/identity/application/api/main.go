package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/identity/application/handlers"
	appsvcs "github.com/ghuser/vitrina/services/identity/application/services"
)

// IdentityRoutes registers admin authentication endpoints on the provided chi router.
func IdentityRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/auth/admin", func(r chi.Router) {
		// Credential endpoints get a tighter per-IP limit than the global one.
		strict := httprate.LimitByIP(10, time.Minute)
		r.With(strict).Post("/register-owner", handlers.NewRegisterOwnerHandler(svcs).Execute)
		r.With(strict).Post("/login", handlers.NewLoginHandler(svcs).Execute)
		r.With(a.RequireAdmin()...).Post("/logout", handlers.NewLogoutHandler(svcs).Execute)
	})
}
