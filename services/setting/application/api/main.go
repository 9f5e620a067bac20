package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/setting/application/handlers"
	appsvcs "github.com/ghuser/vitrina/services/setting/application/services"
)

// SettingRoutes registers storefront setting endpoints on the provided chi router.
func SettingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", handlers.NewGetSettingHandler(svcs).Execute)
		r.With(a.RequireAdmin()...).Put("/admin", handlers.NewPutSettingHandler(svcs).Execute)
	})
}
