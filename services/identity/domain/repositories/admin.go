package repositories

import (
	"context"

	"github.com/ghuser/vitrina/services/identity/domain/models"
)

// AdminRepository defines persistence for businesses and their admin users.
type AdminRepository interface {
	// CreateOwner stores b and u in one transaction.
	// Returns ErrEmailTaken if u.Email is already registered.
	CreateOwner(ctx context.Context, b *models.Business, u *models.AdminUser) error
	// FindByEmail looks up an admin by normalized email.
	// Returns ErrAdminNotFound if none exists.
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
