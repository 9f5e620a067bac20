package handlers

import (
	"time"

	"github.com/google/uuid"

	appsvcs "github.com/ghuser/vitrina/services/identity/application/services"
)

// AdminResponse is the public view of an admin user.
type AdminResponse struct {
	ID         uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	BusinessID uuid.UUID `json:"business_id" example:"6f1c2a9e-1b7d-4c55-9a3e-2d9b8f0e4a11"`
	Name       string    `json:"name"        example:"Ana"`
	Email      string    `json:"email"       example:"ana@luna.test"`
	Role       string    `json:"role"        example:"owner"`
} // @name AdminResponse

// BusinessResponse is the public view of a business.
type BusinessResponse struct {
	ID   uuid.UUID `json:"id"   example:"6f1c2a9e-1b7d-4c55-9a3e-2d9b8f0e4a11"`
	Name string    `json:"name" example:"Carpintería Luna"`
} // @name BusinessResponse

// SessionResponse is returned by register-owner and login.
type SessionResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	Admin     AdminResponse     `json:"admin"`
	Business  *BusinessResponse `json:"business,omitempty"`
} // @name SessionResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
} // @name ErrorResponse

func toSessionResponse(s *appsvcs.Session) SessionResponse {
	resp := SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Admin: AdminResponse{
			ID:         s.Admin.ID,
			BusinessID: s.Admin.BusinessID,
			Name:       s.Admin.Name,
			Email:      s.Admin.Email,
			Role:       s.Admin.Role,
		},
	}
	if s.Business != nil {
		resp.Business = &BusinessResponse{ID: s.Business.ID, Name: s.Business.Name}
	}
	return resp
}
