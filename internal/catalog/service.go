package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

// Service resolves products from the master, front-loaded by the cache.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService constructs a new Service.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetByCode looks up a product by its scan code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: product code is required", httpx.ErrValidation)
	}
	p, err := s.cache.Fetch(ctx, s.cache.keyByCode(code), func(ctx context.Context) (*Product, error) {
		return s.repo.GetByCode(ctx, code)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: product code %s", httpx.ErrNotFound, code)
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// GetByID looks up a product by its numeric id. Missing ids map to the
// same not-found error as missing codes.
func (s *Service) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.cache.Fetch(ctx, s.cache.keyByID(id), func(ctx context.Context) (*Product, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// WarmCache preloads recent product codes into the cache.
func (s *Service) WarmCache(ctx context.Context, limit int) (int, error) {
	codes, err := s.repo.ListCodes(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list product codes: %w", err)
	}
	warmed := 0
	for _, code := range codes {
		if _, err := s.GetByCode(ctx, code); err == nil {
			warmed++
		}
	}
	return warmed, nil
}
