package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ProductTitle is a value object representing a valid product title.
// Encapsulates validation rules: 1 <= runes <= 200 after trimming.
type ProductTitle string

const (
	minProductTitleLength = 1
	maxProductTitleLength = 200
)

// NewProductTitle trims s and constructs a valid ProductTitle or returns an
// error if constraints are violated.
func NewProductTitle(s string) (ProductTitle, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minProductTitleLength {
		return "", fmt.Errorf("title must be at least %d character", minProductTitleLength)
	}
	if n > maxProductTitleLength {
		return "", fmt.Errorf("title must not exceed %d characters", maxProductTitleLength)
	}
	return ProductTitle(s), nil
}

// String returns the underlying string value.
func (t ProductTitle) String() string {
	return string(t)
}
