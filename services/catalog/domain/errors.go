package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrProductNotFound indicates the product does not exist for the tenant,
	// or is inactive on a public read.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct indicates a product field violates domain constraints.
	ErrInvalidProduct = errors.New("invalid product")
)
