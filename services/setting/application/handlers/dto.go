package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/setting/domain/models"
)

// SettingResponse is the JSON shape of storefront settings.
type SettingResponse struct {
	BusinessID     uuid.UUID  `json:"business_id"      example:"6f1c2a9e-1b7d-4c55-9a3e-2d9b8f0e4a11"`
	BannerImageURL string     `json:"banner_image_url" example:"https://cdn.example.com/banner.jpg"`
	HeroTitle      string     `json:"hero_title"       example:"Hecho a tu medida"`
	HeroSubtitle   string     `json:"hero_subtitle"    example:"Muebles a medida con calidad artesanal"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
} // @name SettingResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid setting"`
} // @name ErrorResponse

func toSettingResponse(s *models.Setting) SettingResponse {
	resp := SettingResponse{
		BusinessID:     s.BusinessID,
		BannerImageURL: s.BannerImageURL,
		HeroTitle:      s.HeroTitle,
		HeroSubtitle:   s.HeroSubtitle,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = &s.UpdatedAt
	}
	return resp
}
