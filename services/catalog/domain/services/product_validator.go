// Package services contains stateless domain services for the catalog bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/catalog/domain/models"
)

const maxProductImages = 10

// ValidateTitle enforces business rules for ProductTitle beyond the structural
// constraints enforced by the ProductTitle constructor.
//
// Business rules:
//   - No control characters (Unicode category Cc)
//   - No consecutive spaces
func ValidateTitle(title models.ProductTitle) error {
	s := title.String()

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("title must not contain control characters")
		}
	}

	if strings.Contains(s, "  ") {
		return fmt.Errorf("title must not contain consecutive spaces")
	}

	return nil
}

// ValidateImages requires at most 10 absolute http(s) URLs.
func ValidateImages(images []string) error {
	if len(images) > maxProductImages {
		return fmt.Errorf("at most %d images are allowed", maxProductImages)
	}
	for _, raw := range images {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("image %q must be an absolute http(s) URL", raw)
		}
	}
	return nil
}

// ValidateProduct performs cross-field validation on a Product aggregate
// before it is persisted.
func ValidateProduct(p *models.Product) error {
	if p == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if err := ValidateTitle(p.Title); err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}
	if err := ValidateImages(p.Images); err != nil {
		return fmt.Errorf("invalid images: %w", err)
	}
	if p.BusinessID == uuid.Nil {
		return fmt.Errorf("business_id must be set")
	}
	if p.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	return nil
}
