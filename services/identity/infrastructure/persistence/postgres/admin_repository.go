package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/vitrina/pkg/database"
	identitydomain "github.com/ghuser/vitrina/services/identity/domain"
	"github.com/ghuser/vitrina/services/identity/domain/models"
)

const uniqueViolation = "23505"

// AdminRepository implements repositories.AdminRepository against PostgreSQL.
type AdminRepository struct {
	db *database.Database
}

// NewAdminRepository returns an AdminRepository backed by the given connection pool.
func NewAdminRepository(db *database.Database) *AdminRepository {
	return &AdminRepository{db: db}
}

// CreateOwner inserts the business and its owner in one transaction.
func (r *AdminRepository) CreateOwner(ctx context.Context, b *models.Business, u *models.AdminUser) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO businesses (id, name, contact_email, phone, address, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			b.ID, b.Name, b.ContactEmail, b.Phone, b.Address, b.CreatedAt, b.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert business: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO admin_users (id, business_id, name, email, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			u.ID, u.BusinessID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return identitydomain.ErrEmailTaken
			}
			return fmt.Errorf("insert admin user: %w", err)
		}
		return nil
	})
}

// FindByEmail returns the admin whose email matches case-insensitively.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.DB().QueryRowContext(ctx, `
SELECT id, business_id, name, email, password_hash, role, created_at, updated_at
FROM admin_users
WHERE lower(email) = lower($1)`, email).Scan(
		&u.ID, &u.BusinessID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identitydomain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("query admin user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
