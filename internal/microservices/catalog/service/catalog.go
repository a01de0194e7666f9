package service

import (
	"context"
	"errors"
	"fmt"

	"pos-voice/internal/domain"
	"pos-voice/internal/microservices/catalog/repository"
)

var ErrInvalidCategory = errors.New("invalid category id")

type CatalogServiceInterface interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
}

type CatalogService struct {
	repo repository.CatalogRepositoryInterface
}

func NewCatalogService(repo repository.CatalogRepositoryInterface) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.Categories(ctx)
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	if categoryID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, categoryID)
	}
	return s.repo.ProductsByCategory(ctx, categoryID)
}
