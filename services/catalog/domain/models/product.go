package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the core aggregate of the catalog context.
type Product struct {
	ID                uuid.UUID
	BusinessID        uuid.UUID // tenant scope, never changes after creation
	Title             ProductTitle
	Description       string
	Price             decimal.Decimal
	Images            []string
	Category          string
	AvailableQuantity int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProductDraft carries the fields of a product to be created.
type ProductDraft struct {
	Title             string
	Description       string
	Price             decimal.Decimal
	Images            []string
	Category          string
	AvailableQuantity int
	IsActive          *bool // nil means active
}

// ProductPatch is a partial update. Nil fields are left unchanged.
type ProductPatch struct {
	Title             *string
	Description       *string
	Price             *decimal.Decimal
	Images            []string // nil leaves images unchanged; empty clears them
	Category          *string
	AvailableQuantity *int
	IsActive          *bool
}

// NewProduct constructs a valid Product for businessID.
func NewProduct(businessID uuid.UUID, d ProductDraft, now time.Time) (*Product, error) {
	title, err := NewProductTitle(d.Title)
	if err != nil {
		return nil, err
	}
	active := true
	if d.IsActive != nil {
		active = *d.IsActive
	}
	p := &Product{
		ID:                uuid.New(),
		BusinessID:        businessID,
		Title:             title,
		Description:       strings.TrimSpace(d.Description),
		Price:             d.Price,
		Images:            nonNil(d.Images),
		Category:          strings.TrimSpace(d.Category),
		AvailableQuantity: d.AvailableQuantity,
		IsActive:          active,
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
	if err := p.checkRanges(); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply merges patch into p. p is left untouched when the patch is invalid.
func (p *Product) Apply(patch ProductPatch, now time.Time) error {
	next := *p
	if patch.Title != nil {
		title, err := NewProductTitle(*patch.Title)
		if err != nil {
			return err
		}
		next.Title = title
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Images != nil {
		next.Images = patch.Images
	}
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.AvailableQuantity != nil {
		next.AvailableQuantity = *patch.AvailableQuantity
	}
	if patch.IsActive != nil {
		next.IsActive = *patch.IsActive
	}
	if err := next.checkRanges(); err != nil {
		return err
	}
	next.UpdatedAt = now.UTC()
	*p = next
	return nil
}

// price is stored as NUMERIC(12,2) and available_quantity as INTEGER.
var maxPrice = decimal.New(1, 10)

func (p *Product) checkRanges() error {
	if !p.Price.IsPositive() {
		return fmt.Errorf("price must be greater than zero")
	}
	if !p.Price.Equal(p.Price.Round(2)) {
		return fmt.Errorf("price must have at most 2 decimal places")
	}
	if p.Price.GreaterThanOrEqual(maxPrice) {
		return fmt.Errorf("price must be less than %s", maxPrice)
	}
	if p.AvailableQuantity < 0 {
		return fmt.Errorf("available_quantity must not be negative")
	}
	if p.AvailableQuantity > math.MaxInt32 {
		return fmt.Errorf("available_quantity must not exceed %d", math.MaxInt32)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
