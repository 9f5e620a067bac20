package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/auth"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Business is the tenant. Every product, sale, quote and setting belongs to one.
type Business struct {
	ID           uuid.UUID
	Name         string
	ContactEmail string
	Phone        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AdminUser is a person allowed to manage one business.
type AdminUser struct {
	ID           uuid.UUID
	BusinessID   uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the token subject for u.
func (u *AdminUser) Principal() auth.Principal {
	return auth.Principal{
		AdminID:  u.ID,
		TenantID: u.BusinessID,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Registration is the input of the register-owner flow.
type Registration struct {
	BusinessName string
	Name         string
	Email        string
	Password     string
	Phone        string
	Address      string
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the registration fields. Email is expected normalized.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.BusinessName) == "" {
		return errors.New("business name is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email %q is not valid", r.Email)
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// NewOwner builds the business and its owner account from a validated registration.
func NewOwner(r Registration, passwordHash string, now time.Time) (*Business, *AdminUser) {
	now = now.UTC()
	b := &Business{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(r.BusinessName),
		ContactEmail: r.Email,
		Phone:        strings.TrimSpace(r.Phone),
		Address:      strings.TrimSpace(r.Address),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u := &AdminUser{
		ID:           uuid.New(),
		BusinessID:   b.ID,
		Name:         strings.TrimSpace(r.Name),
		Email:        r.Email,
		PasswordHash: passwordHash,
		Role:         auth.RoleOwner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return b, u
}
