package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/quote/application/handlers"
	appsvcs "github.com/ghuser/vitrina/services/quote/application/services"
)

// QuoteRoutes registers quote endpoints on the provided chi router.
func QuoteRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/quotes", func(r chi.Router) {
		r.Post("/", handlers.NewPostQuoteHandler(svcs).Execute)
		r.Route("/admin", func(r chi.Router) {
			r.Use(a.RequireAdmin()...)
			r.Get("/", handlers.NewListQuotesHandler(svcs).Execute)
			r.Put("/{id}/status", handlers.NewPutQuoteStatusHandler(svcs).Execute)
		})
	})
}
