package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/vitrina/services/catalog/application/services"
)

// CatalogRoutes registers product endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", handlers.NewListProductsHandler(svcs).Execute)

		r.Route("/admin", func(r chi.Router) {
			r.Use(a.RequireAdmin()...)
			r.Get("/", handlers.NewListAdminProductsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostProductHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutProductHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteProductHandler(svcs).Execute)
		})

		r.Get("/{id}", handlers.NewGetProductHandler(svcs).Execute)
	})
}
