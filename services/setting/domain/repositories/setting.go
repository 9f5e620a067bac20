package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/setting/domain/models"
)

// SettingRepository defines persistence for storefront settings.
type SettingRepository interface {
	// Get returns the business's saved settings or ErrSettingNotFound.
	Get(ctx context.Context, businessID uuid.UUID) (*models.Setting, error)
	// Upsert loads the business's settings (defaults when none are saved),
	// applies mutate and stores the result.
	Upsert(ctx context.Context, businessID uuid.UUID, mutate func(s *models.Setting) error) (*models.Setting, error)
}
