package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Parse for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload issued to admin users.
type Claims struct {
	BusinessID string `json:"business_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 admin tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns a TokenIssuer. secret should be at least 32 bytes.
func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for p and its expiry time. p.TokenID is
// ignored; every token gets a fresh jti.
func (t *TokenIssuer) Issue(p Principal) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := &Claims{
		BusinessID: p.TenantID.String(),
		Email:      p.Email,
		Role:       p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.AdminID.String(),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies tokenString and returns the principal it carries together
// with its expiry.
func (t *TokenIssuer) Parse(tokenString string) (Principal, time.Time, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return Principal{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, time.Time{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	tenantID, err := uuid.Parse(claims.BusinessID)
	if err != nil || tenantID == uuid.Nil {
		return Principal{}, time.Time{}, fmt.Errorf("%w: bad business_id", ErrInvalidToken)
	}

	return Principal{
		AdminID:  adminID,
		TenantID: tenantID,
		Email:    claims.Email,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}, claims.ExpiresAt.Time, nil
}
