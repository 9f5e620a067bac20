package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/sales/application/handlers"
	appsvcs "github.com/ghuser/vitrina/services/sales/application/services"
)

// SalesRoutes registers sale endpoints on the provided chi router.
// Every sales endpoint acts on the caller's own business.
func SalesRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/sales", func(r chi.Router) {
		r.Use(a.RequireAdmin()...)
		r.Get("/", handlers.NewListSalesHandler(svcs).Execute)
		r.Post("/{productId}", handlers.NewPostSaleHandler(svcs).Execute)
	})
}
