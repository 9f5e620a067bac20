package domain

import "errors"

// Sentinel errors for the quote domain. Use errors.Is() to check these.
var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrInvalidQuote     = errors.New("invalid quote")
	ErrInvalidStatus    = errors.New("invalid quote status")
	ErrBusinessNotFound = errors.New("business not found")

	// ErrProductNotFound is returned when a quote names a product that is not
	// an active product of the quoted business.
	ErrProductNotFound = errors.New("quoted product not found")
)
