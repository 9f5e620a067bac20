package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Storefront defaults shown until a business saves its own settings.
const (
	DefaultHeroTitle    = "Hecho a tu medida"
	DefaultHeroSubtitle = "Muebles a medida con calidad artesanal"
)

const maxHeroText = 300

// Setting is the storefront configuration of one business.
type Setting struct {
	BusinessID     uuid.UUID
	BannerImageURL string
	HeroTitle      string
	HeroSubtitle   string
	UpdatedAt      time.Time
}

// DefaultSetting returns the settings a business has before saving any.
func DefaultSetting(businessID uuid.UUID) *Setting {
	return &Setting{
		BusinessID:   businessID,
		HeroTitle:    DefaultHeroTitle,
		HeroSubtitle: DefaultHeroSubtitle,
	}
}

// SettingPatch is a partial update. Nil fields are left unchanged.
type SettingPatch struct {
	BannerImageURL *string
	HeroTitle      *string
	HeroSubtitle   *string
}

// Apply validates patch and applies it to s. s is unchanged on error.
func (s *Setting) Apply(patch SettingPatch, now time.Time) error {
	next := *s
	if patch.BannerImageURL != nil {
		u := strings.TrimSpace(*patch.BannerImageURL)
		if u != "" {
			if err := checkURL(u); err != nil {
				return err
			}
		}
		next.BannerImageURL = u
	}
	if patch.HeroTitle != nil {
		t, err := heroText("hero title", *patch.HeroTitle)
		if err != nil {
			return err
		}
		next.HeroTitle = t
	}
	if patch.HeroSubtitle != nil {
		t, err := heroText("hero subtitle", *patch.HeroSubtitle)
		if err != nil {
			return err
		}
		next.HeroSubtitle = t
	}
	next.UpdatedAt = now.UTC()
	*s = next
	return nil
}

func heroText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s must not be empty", field)
	}
	if utf8.RuneCountInString(v) > maxHeroText {
		return "", fmt.Errorf("%s exceeds %d characters", field, maxHeroText)
	}
	return v, nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("banner image url must be an absolute http(s) URL")
	}
	return nil
}
