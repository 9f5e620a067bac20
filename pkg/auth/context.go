package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const principalKey contextKey = "principal"

// Admin roles. Every role may use the admin endpoints of its own business.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// AdminRoles lists the roles accepted by the admin endpoints.
var AdminRoles = []string{RoleOwner, RoleStaff, RoleAdmin}

// ErrUnauthenticated is returned when no principal exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUnauthenticated = errors.New("authentication required")

// Principal is the authenticated admin behind a request. TenantID is the
// business every tenant-scoped operation runs against.
type Principal struct {
	AdminID  uuid.UUID
	TenantID uuid.UUID
	Email    string
	Role     string
	TokenID  string    // jti, used for revocation on logout
	Expires  time.Time // token expiry, zero when not issued from a token
}

// WithPrincipal returns a new context with p attached.
// Used by RequireAuth after validating the bearer token.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromCtx extracts the authenticated principal from the request context.
// Returns ErrUnauthenticated if none is set or it carries no tenant.
func PrincipalFromCtx(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.TenantID == uuid.Nil {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}

// TenantIDFromCtx is a shortcut for PrincipalFromCtx(ctx).TenantID.
func TenantIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	p, err := PrincipalFromCtx(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return p.TenantID, nil
}
