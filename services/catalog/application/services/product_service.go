package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/vitrina/pkg/cache"
	"github.com/ghuser/vitrina/pkg/logger"
	catalogdomain "github.com/ghuser/vitrina/services/catalog/domain"
	"github.com/ghuser/vitrina/services/catalog/domain/models"
	"github.com/ghuser/vitrina/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/vitrina/services/catalog/domain/services"
)

// ProductCache is the read-model cache used for public product reads.
// *pkgcache.ProductCache satisfies it.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*pkgcache.CachedProduct, error)
	Set(ctx context.Context, p *pkgcache.CachedProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService orchestrates catalog reads and admin writes.
// Event publishing is handled by the repository layer (outbox pattern).
// Public single-product reads are served from Redis when available.
type ProductService struct {
	repo  repositories.ProductRepository
	cache ProductCache
	log   logger.Logger
	now   func() time.Time
}

// NewProductService returns a ProductService wired with the given repository
// and cache. A nil cache disables read-through caching.
func NewProductService(repo repositories.ProductRepository, cache ProductCache, log logger.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, log: log, now: time.Now}
}

// Create validates and persists a product for businessID.
func (s *ProductService) Create(ctx context.Context, businessID uuid.UUID, d models.ProductDraft) (*models.Product, error) {
	p, err := models.NewProduct(businessID, d, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidProduct, err)
	}
	if err := domainsvcs.ValidateProduct(p); err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidProduct, err)
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return p, nil
}

// Update applies patch to the tenant's product. Stock changes made here are
// restocks or corrections and serialize with sales on the product row lock.
func (s *ProductService) Update(ctx context.Context, businessID, id uuid.UUID, patch models.ProductPatch) (*models.Product, error) {
	p, err := s.repo.Update(ctx, businessID, id, func(p *models.Product) error {
		if err := p.Apply(patch, s.now()); err != nil {
			return fmt.Errorf("%w: %w", catalogdomain.ErrInvalidProduct, err)
		}
		if err := domainsvcs.ValidateProduct(p); err != nil {
			return fmt.Errorf("%w: %w", catalogdomain.ErrInvalidProduct, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, catalogdomain.ErrInvalidProduct) || errors.Is(err, catalogdomain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidate(ctx, id)
	return p, nil
}

// Delete removes the tenant's product. Sale records keep their name snapshot.
func (s *ProductService) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, businessID, id); err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// ListAdmin returns every product of the tenant, active or not.
func (s *ProductService) ListAdmin(ctx context.Context, businessID uuid.UUID) ([]*models.Product, error) {
	products, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListPublic returns the business's active products matching filter.
func (s *ProductService) ListPublic(ctx context.Context, businessID uuid.UUID, filter repositories.PublicFilter) ([]*models.Product, error) {
	if businessID == uuid.Nil {
		return nil, fmt.Errorf("%w: business_id is required", catalogdomain.ErrInvalidProduct)
	}
	products, err := s.repo.ListActive(ctx, businessID, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetPublic retrieves an active product using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *ProductService) GetPublic(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCache(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		}
	}

	p, err := s.repo.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		warmCtx := context.WithoutCancel(ctx)
		go func() {
			if err := s.cache.Set(warmCtx, toCache(p)); err != nil {
				s.log.WarnContext(warmCtx, "product cache warm failed", "product_id", p.ID, "error", err)
			}
		}()
	}
	return p, nil
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		// the worker invalidates again on product.changed
		s.log.WarnContext(ctx, "product cache invalidation failed", "product_id", id, "error", err)
	}
}

func toCache(p *models.Product) *pkgcache.CachedProduct {
	return &pkgcache.CachedProduct{
		ID:                p.ID,
		BusinessID:        p.BusinessID,
		Title:             p.Title.String(),
		Description:       p.Description,
		Price:             p.Price,
		Images:            p.Images,
		Category:          p.Category,
		AvailableQuantity: p.AvailableQuantity,
		UpdatedAt:         p.UpdatedAt,
	}
}

func fromCache(c *pkgcache.CachedProduct) *models.Product {
	return &models.Product{
		ID:                c.ID,
		BusinessID:        c.BusinessID,
		Title:             models.ProductTitle(c.Title),
		Description:       c.Description,
		Price:             c.Price,
		Images:            c.Images,
		Category:          c.Category,
		AvailableQuantity: c.AvailableQuantity,
		IsActive:          true,
		UpdatedAt:         c.UpdatedAt,
	}
}
