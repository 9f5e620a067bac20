package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/logger"
	settingdomain "github.com/ghuser/vitrina/services/setting/domain"
	"github.com/ghuser/vitrina/services/setting/domain/models"
	"github.com/ghuser/vitrina/services/setting/domain/repositories"
)

// SettingService reads and updates storefront settings.
type SettingService struct {
	repo repositories.SettingRepository
	log  logger.Logger
	now  func() time.Time
}

// NewSettingService returns a SettingService wired with the given repository.
func NewSettingService(repo repositories.SettingRepository, log logger.Logger) *SettingService {
	return &SettingService{repo: repo, log: log, now: time.Now}
}

// Get returns the business's settings, or the defaults if it never saved any.
func (s *SettingService) Get(ctx context.Context, businessID uuid.UUID) (*models.Setting, error) {
	if businessID == uuid.Nil {
		return nil, fmt.Errorf("%w: business_id is required", settingdomain.ErrInvalidSetting)
	}
	setting, err := s.repo.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingdomain.ErrSettingNotFound) {
			return models.DefaultSetting(businessID), nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return setting, nil
}

// Update applies patch to the business's settings, creating them if needed.
func (s *SettingService) Update(ctx context.Context, businessID uuid.UUID, patch models.SettingPatch) (*models.Setting, error) {
	setting, err := s.repo.Upsert(ctx, businessID, func(st *models.Setting) error {
		if err := st.Apply(patch, s.now()); err != nil {
			return fmt.Errorf("%w: %w", settingdomain.ErrInvalidSetting, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, settingdomain.ErrInvalidSetting) {
			return nil, err
		}
		return nil, fmt.Errorf("update setting: %w", err)
	}
	s.log.InfoContext(ctx, "settings updated", "business_id", businessID)
	return setting, nil
}
