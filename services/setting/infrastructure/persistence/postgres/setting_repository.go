package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/database"
	settingdomain "github.com/ghuser/vitrina/services/setting/domain"
	"github.com/ghuser/vitrina/services/setting/domain/models"
)

const selectSetting = `
SELECT business_id, banner_image_url, hero_title, hero_subtitle, updated_at
FROM settings
WHERE business_id = $1`

// SettingRepository implements repositories.SettingRepository against PostgreSQL.
type SettingRepository struct {
	db *database.Database
}

// NewSettingRepository returns a SettingRepository backed by the given connection pool.
func NewSettingRepository(db *database.Database) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the saved settings of the business.
func (r *SettingRepository) Get(ctx context.Context, businessID uuid.UUID) (*models.Setting, error) {
	s, err := scanSetting(r.db.DB().QueryRowContext(ctx, selectSetting, businessID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settingdomain.ErrSettingNotFound
		}
		return nil, fmt.Errorf("query setting: %w", err)
	}
	return s, nil
}

// Upsert locks the business's settings row, or starts from defaults when
// there is none, applies mutate and writes the result.
func (r *SettingRepository) Upsert(ctx context.Context, businessID uuid.UUID, mutate func(s *models.Setting) error) (*models.Setting, error) {
	var saved *models.Setting
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		s, err := scanSetting(tx.QueryRowContext(ctx, selectSetting+` FOR UPDATE`, businessID))
		switch {
		case errors.Is(err, sql.ErrNoRows):
			s = models.DefaultSetting(businessID)
		case err != nil:
			return fmt.Errorf("query setting: %w", err)
		}

		if err := mutate(s); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO settings (business_id, banner_image_url, hero_title, hero_subtitle, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (business_id) DO UPDATE
SET banner_image_url = EXCLUDED.banner_image_url,
	hero_title = EXCLUDED.hero_title,
	hero_subtitle = EXCLUDED.hero_subtitle,
	updated_at = EXCLUDED.updated_at`,
			s.BusinessID, s.BannerImageURL, s.HeroTitle, s.HeroSubtitle, s.UpdatedAt,
		); err != nil {
			return fmt.Errorf("upsert setting: %w", err)
		}
		saved = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func scanSetting(row *sql.Row) (*models.Setting, error) {
	var s models.Setting
	if err := row.Scan(&s.BusinessID, &s.BannerImageURL, &s.HeroTitle, &s.HeroSubtitle, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
