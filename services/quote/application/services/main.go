package services

import (
	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/quote/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Quote *QuoteService
}

// New wires all quote application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewQuoteRepository(a.Db, a.EventBus)
	return &Services{
		Quote: NewQuoteService(repo, a.Logger),
	}
}
