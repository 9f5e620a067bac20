package services

import (
	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/sales/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Sale *SaleService
}

// New wires all sales application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewSaleRepository(a.Db, a.EventBus)
	return &Services{
		Sale: NewSaleService(repo, a.Logger),
	}
}
