package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func ptr(s string) *string { return &s }

func TestDefaultSetting(t *testing.T) {
	s := DefaultSetting(uuid.New())
	if s.HeroTitle != "Hecho a tu medida" || s.HeroSubtitle != "Muebles a medida con calidad artesanal" {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.BannerImageURL != "" {
		t.Error("default banner should be empty")
	}
}

func TestSetting_Apply(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partial", func(t *testing.T) {
		s := DefaultSetting(uuid.New())
		if err := s.Apply(SettingPatch{HeroTitle: ptr("  Muebles Luna ")}, now); err != nil {
			t.Fatal(err)
		}
		if s.HeroTitle != "Muebles Luna" {
			t.Errorf("title = %q", s.HeroTitle)
		}
		if s.HeroSubtitle != DefaultHeroSubtitle {
			t.Error("subtitle must be unchanged")
		}
		if !s.UpdatedAt.Equal(now) {
			t.Error("UpdatedAt not set")
		}
	})

	t.Run("clear banner", func(t *testing.T) {
		s := DefaultSetting(uuid.New())
		s.BannerImageURL = "https://cdn.test/banner.jpg"
		if err := s.Apply(SettingPatch{BannerImageURL: ptr("")}, now); err != nil {
			t.Fatal(err)
		}
		if s.BannerImageURL != "" {
			t.Error("banner should be cleared")
		}
	})

	tests := []struct {
		name  string
		patch SettingPatch
	}{
		{"empty title", SettingPatch{HeroTitle: ptr("   ")}},
		{"relative banner", SettingPatch{BannerImageURL: ptr("/banner.jpg")}},
		{"ftp banner", SettingPatch{BannerImageURL: ptr("ftp://cdn.test/b.jpg")}},
		{"valid title then empty subtitle", SettingPatch{HeroTitle: ptr("Nuevo"), HeroSubtitle: ptr("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSetting(uuid.New())
			before := *s
			if err := s.Apply(tt.patch, now); err == nil {
				t.Fatal("expected error")
			}
			if *s != before {
				t.Error("setting must be unchanged on error")
			}
		})
	}
}
