package services

import (
	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/pkg/cache"
	"github.com/ghuser/vitrina/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Product *ProductService
}

// New wires all catalog application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewProductRepository(a.Db, a.EventBus)
	var productCache ProductCache
	if a.Redis != nil {
		productCache = cache.NewProductCache(a.Redis, a.Config.ProductCacheTTL)
	}
	return &Services{
		Product: NewProductService(repo, productCache, a.Logger),
	}
}
