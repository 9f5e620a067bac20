package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/logger"
	quotedomain "github.com/ghuser/vitrina/services/quote/domain"
	"github.com/ghuser/vitrina/services/quote/domain/models"
	"github.com/ghuser/vitrina/services/quote/domain/repositories"
)

// QuoteService accepts quote requests from the storefront and lets admins triage them.
// Event publishing is handled by the repository layer (outbox pattern).
type QuoteService struct {
	repo repositories.QuoteRepository
	log  logger.Logger
	now  func() time.Time
}

// NewQuoteService returns a QuoteService wired with the given repository.
func NewQuoteService(repo repositories.QuoteRepository, log logger.Logger) *QuoteService {
	return &QuoteService{repo: repo, log: log, now: time.Now}
}

// Create validates and stores a visitor's quote request.
func (s *QuoteService) Create(ctx context.Context, req models.QuoteRequest) (*models.Quote, error) {
	q, err := models.NewQuote(req, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quotedomain.ErrInvalidQuote, err)
	}
	if err := s.repo.Save(ctx, q); err != nil {
		if errors.Is(err, quotedomain.ErrBusinessNotFound) || errors.Is(err, quotedomain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("save quote: %w", err)
	}
	s.log.InfoContext(ctx, "quote created", "quote_id", q.ID, "business_id", q.BusinessID)
	return q, nil
}

// List returns the business's quotes. An empty status lists all of them.
func (s *QuoteService) List(ctx context.Context, businessID uuid.UUID, status string) ([]*models.Quote, error) {
	var filter *models.Status
	if status != "" {
		st, err := models.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", quotedomain.ErrInvalidStatus, err)
		}
		filter = &st
	}
	quotes, err := s.repo.List(ctx, businessID, filter)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

// UpdateStatus moves the business's quote to status. Any transition is allowed.
func (s *QuoteService) UpdateStatus(ctx context.Context, businessID, id uuid.UUID, status string) (*models.Quote, error) {
	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quotedomain.ErrInvalidStatus, err)
	}
	q, err := s.repo.UpdateStatus(ctx, businessID, id, st, s.now().UTC())
	if err != nil {
		if errors.Is(err, quotedomain.ErrQuoteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	return q, nil
}
