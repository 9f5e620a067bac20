package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/logger"
	identitydomain "github.com/ghuser/vitrina/services/identity/domain"
	"github.com/ghuser/vitrina/services/identity/domain/models"
	"github.com/ghuser/vitrina/services/identity/domain/repositories"
)

// TokenIssuer signs admin tokens. *auth.TokenIssuer satisfies it.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
}

// Session is the result of a successful registration or login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.AdminUser
	Business  *models.Business // set on registration only
}

// IdentityService registers business owners and authenticates admins.
type IdentityService struct {
	repo       repositories.AdminRepository
	tokens     TokenIssuer
	revoked    auth.RevocationStore
	bcryptCost int
	log        logger.Logger
	now        func() time.Time
}

// NewIdentityService returns an IdentityService. revoked may be nil, in which
// case Logout fails.
func NewIdentityService(repo repositories.AdminRepository, tokens TokenIssuer, revoked auth.RevocationStore, bcryptCost int, log logger.Logger) *IdentityService {
	return &IdentityService{
		repo:       repo,
		tokens:     tokens,
		revoked:    revoked,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
	}
}

// RegisterOwner creates a business together with its owner account and
// returns a signed-in session for the owner.
func (s *IdentityService) RegisterOwner(ctx context.Context, reg models.Registration) (*Session, error) {
	reg.Email = models.NormalizeEmail(reg.Email)
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", identitydomain.ErrInvalidRegistration, err)
	}

	hash, err := auth.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	business, owner := models.NewOwner(reg, hash, s.now())
	if err := s.repo.CreateOwner(ctx, business, owner); err != nil {
		if errors.Is(err, identitydomain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create owner: %w", err)
	}

	token, exp, err := s.tokens.Issue(owner.Principal())
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "business registered", "business_id", business.ID, "admin_id", owner.ID)
	return &Session{Token: token, ExpiresAt: exp, Admin: owner, Business: business}, nil
}

// Login checks email and password. Unknown email and wrong password both
// yield ErrInvalidCredentials.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*Session, error) {
	admin, err := s.repo.FindByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, identitydomain.ErrAdminNotFound) {
			return nil, identitydomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	ok, err := auth.CheckPassword(admin.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.WarnContext(ctx, "failed login", "admin_id", admin.ID)
		return nil, identitydomain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(admin.Principal())
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, Admin: admin}, nil
}

// Logout revokes the token that authenticated p until it would have expired anyway.
func (s *IdentityService) Logout(ctx context.Context, p auth.Principal) error {
	if s.revoked == nil {
		return errors.New("token revocation is not configured")
	}
	if p.TokenID == "" {
		return auth.ErrUnauthenticated
	}
	if err := s.revoked.Revoke(ctx, p.TokenID, p.Expires.Sub(s.now())); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "admin logged out", "admin_id", p.AdminID)
	return nil
}
