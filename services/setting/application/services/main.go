package services

import (
	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/services/setting/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Setting *SettingService
}

// New wires all setting application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Setting: NewSettingService(postgres.NewSettingRepository(a.Db), a.Logger),
	}
}
