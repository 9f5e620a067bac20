package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Status is the handling state of a quote request.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

// ParseStatus returns the Status named by s.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusNew, StatusInProgress, StatusClosed:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

const maxCustomerName = 200

// Quote is a storefront visitor's request for a price, optionally about one product.
type Quote struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	ProductID     *uuid.UUID
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Message       string
	Quantity      int
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// QuoteRequest is the visitor-supplied part of a quote.
type QuoteRequest struct {
	BusinessID    uuid.UUID
	ProductID     *uuid.UUID
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Message       string
	Quantity      int // zero means 1
}

// NewQuote validates req and returns a quote in status new.
func NewQuote(req QuoteRequest, now time.Time) (*Quote, error) {
	if req.BusinessID == uuid.Nil {
		return nil, errors.New("business_id is required")
	}
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, errors.New("customer name is required")
	}
	if utf8.RuneCountInString(name) > maxCustomerName {
		return nil, fmt.Errorf("customer name exceeds %d characters", maxCustomerName)
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", req.Quantity)
	}
	if req.ProductID != nil && *req.ProductID == uuid.Nil {
		req.ProductID = nil
	}

	now = now.UTC()
	return &Quote{
		ID:            uuid.New(),
		BusinessID:    req.BusinessID,
		ProductID:     req.ProductID,
		CustomerName:  name,
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Message:       strings.TrimSpace(req.Message),
		Quantity:      qty,
		Status:        StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
