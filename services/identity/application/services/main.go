package services

import (
	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/identity/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Identity *IdentityService
}

// New wires all identity application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewAdminRepository(a.Db)
	return &Services{
		Identity: NewIdentityService(repo, a.Tokens, a.Revocations, a.Config.BcryptCost, a.Logger),
	}
}
