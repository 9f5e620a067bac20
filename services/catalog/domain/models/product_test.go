package models

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validDraft() ProductDraft {
	return ProductDraft{
		Title:             "Silla plegable",
		Price:             decimal.RequireFromString("45.50"),
		AvailableQuantity: 12,
		Category:          " sillas ",
	}
}

func TestNewProduct(t *testing.T) {
	business := uuid.New()
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	p, err := NewProduct(business, validDraft(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil || p.BusinessID != business {
		t.Fatalf("unexpected ids: %+v", p)
	}
	if !p.IsActive {
		t.Error("new products are active by default")
	}
	if p.Category != "sillas" {
		t.Errorf("expected trimmed category, got %q", p.Category)
	}
	if p.Images == nil {
		t.Error("images must never be nil")
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Error("timestamps must be set from now")
	}
}

func TestNewProduct_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductDraft)
	}{
		{"empty title", func(d *ProductDraft) { d.Title = "" }},
		{"zero price", func(d *ProductDraft) { d.Price = decimal.Zero }},
		{"negative price", func(d *ProductDraft) { d.Price = decimal.NewFromInt(-1) }},
		{"negative stock", func(d *ProductDraft) { d.AvailableQuantity = -1 }},
		{"price below one cent", func(d *ProductDraft) { d.Price = decimal.RequireFromString("0.004") }},
		{"price with three decimals", func(d *ProductDraft) { d.Price = decimal.RequireFromString("1.005") }},
		{"price too large", func(d *ProductDraft) { d.Price = decimal.RequireFromString("10000000000") }},
		{"stock too large", func(d *ProductDraft) { d.AvailableQuantity = math.MaxInt32 + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			if _, err := NewProduct(uuid.New(), d, time.Now()); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestProduct_Apply(t *testing.T) {
	p, _ := NewProduct(uuid.New(), validDraft(), time.Now())
	business := p.BusinessID

	restock := 40
	inactive := false
	title := "Silla plegable XL"
	later := time.Now().Add(time.Hour)
	if err := p.Apply(ProductPatch{Title: &title, AvailableQuantity: &restock, IsActive: &inactive}, later); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title.String() != title || p.AvailableQuantity != 40 || p.IsActive {
		t.Fatalf("patch not applied: %+v", p)
	}
	if p.BusinessID != business {
		t.Fatal("business must never change")
	}
	if !p.Price.Equal(decimal.RequireFromString("45.50")) {
		t.Error("untouched fields must keep their value")
	}
}

func TestProduct_ApplyRejectsUnstorablePrice(t *testing.T) {
	p, _ := NewProduct(uuid.New(), validDraft(), time.Now())

	price := decimal.RequireFromString("12.345")
	if err := p.Apply(ProductPatch{Price: &price}, time.Now()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if !p.Price.Equal(decimal.RequireFromString("45.50")) {
		t.Fatalf("price must be unchanged, got %s", p.Price)
	}

	price = decimal.RequireFromString("9999999999.99")
	if err := p.Apply(ProductPatch{Price: &price}, time.Now()); err != nil {
		t.Fatalf("largest storable price rejected: %v", err)
	}
}

func TestProduct_ApplyInvalidLeavesProductUntouched(t *testing.T) {
	p, _ := NewProduct(uuid.New(), validDraft(), time.Now())
	before := *p

	negative := -5
	title := "Otra"
	if err := p.Apply(ProductPatch{Title: &title, AvailableQuantity: &negative}, time.Now()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if p.Title != before.Title || p.AvailableQuantity != before.AvailableQuantity || !p.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatal("product must be unchanged after a rejected patch")
	}
}
