package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestInsufficientStockError(t *testing.T) {
	err := fmt.Errorf("record sale: %w", &InsufficientStockError{Available: 5, Requested: 6})

	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("errors.Is must match ErrInsufficientStock")
	}
	var stock *InsufficientStockError
	if !errors.As(err, &stock) || stock.Available != 5 {
		t.Fatalf("errors.As must expose the available quantity, got %+v", stock)
	}
	if got := stock.Error(); got != "insufficient stock: available 5, requested 6" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestIsBusinessError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid input", fmt.Errorf("%w: quantity", ErrInvalidInput), true},
		{"not found", ErrProductNotFound, true},
		{"insufficient stock", &InsufficientStockError{Available: 0, Requested: 1}, true},
		{"transaction failed", fmt.Errorf("%w: commit", ErrTransactionFailed), false},
		{"infrastructure", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBusinessError(tt.err); got != tt.want {
				t.Errorf("IsBusinessError() = %v, want %v", got, tt.want)
			}
		})
	}
}
