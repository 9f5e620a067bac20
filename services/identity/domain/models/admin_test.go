package models

import (
	"strings"
	"testing"
	"time"

	"github.com/ghuser/vitrina/pkg/auth"
)

func validRegistration() Registration {
	return Registration{
		BusinessName: "Carpintería Luna",
		Name:         "Ana",
		Email:        "ana@luna.test",
		Password:     "secreto",
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@Luna.TEST "); got != "ana@luna.test" {
		t.Errorf("got %q", got)
	}
}

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Registration)
		want   string
	}{
		{"valid", func(*Registration) {}, ""},
		{"missing business", func(r *Registration) { r.BusinessName = "  " }, "business name"},
		{"missing name", func(r *Registration) { r.Name = "" }, "name is required"},
		{"missing email", func(r *Registration) { r.Email = "" }, "email is required"},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, "not valid"},
		{"short password", func(r *Registration) { r.Password = "12345" }, "at least 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			err := r.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewOwner(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	b, u := NewOwner(validRegistration(), "hash", now)

	if u.BusinessID != b.ID {
		t.Error("owner must belong to the new business")
	}
	if u.Role != auth.RoleOwner {
		t.Errorf("role = %q, want owner", u.Role)
	}
	if b.ContactEmail != u.Email {
		t.Error("business contact email should default to the owner email")
	}

	p := u.Principal()
	if p.TenantID != b.ID || p.AdminID != u.ID || p.Role != auth.RoleOwner {
		t.Errorf("unexpected principal: %+v", p)
	}
}
