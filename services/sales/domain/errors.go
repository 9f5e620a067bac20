package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the sales domain. Use errors.Is() to check these.
var (
	// ErrInvalidInput indicates a missing or out-of-range sale field.
	// Always detected before storage is touched.
	ErrInvalidInput = errors.New("invalid sale input")

	// ErrProductNotFound covers a missing product, an inactive product and a
	// product owned by another tenant. The three are deliberately indistinguishable.
	ErrProductNotFound = errors.New("product not found or inactive")

	// ErrInsufficientStock indicates the requested quantity exceeds available stock.
	// The concrete error is *InsufficientStockError, which carries the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrTransactionFailed indicates an infrastructural failure inside the sale
	// unit of work. Nothing was committed; the caller may retry the whole operation.
	ErrTransactionFailed = errors.New("sale transaction failed")
)

// InsufficientStockError reports how many units were available when a sale
// was rejected.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: available %d, requested %d", ErrInsufficientStock, e.Available, e.Requested)
}

// Is makes errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsBusinessError reports whether err is one of the business-rule failures
// that must be surfaced to the caller unchanged.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
