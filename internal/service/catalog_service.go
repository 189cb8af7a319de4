package service

import (
	"context"

	"github.com/atik94/mobile-resale-market-server/internal/model"

	"github.com/google/uuid"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
	CreateProduct(ctx context.Context, p *model.Product) error
	ListProducts(ctx context.Context, categoryName string) ([]model.Product, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error)
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.repo.CategoryByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *model.Category) (model.InsertResult, error) {
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(c.ID), nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *model.Product) (model.InsertResult, error) {
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(p.ID), nil
}

// ListProducts filters by exact category name; an empty name lists all.
func (s *CatalogService) ListProducts(ctx context.Context, categoryName string) ([]model.Product, error) {
	return s.repo.ListProducts(ctx, categoryName)
}

func (s *CatalogService) Product(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repo.ProductByID(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) (model.DeleteResult, error) {
	n, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return model.DeleteResult{}, err
	}
	return model.Deleted(n), nil
}
