package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/atik94/mobile-resale-market-server/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CatalogRepository struct {
	store *Store
}

func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.store.executor(ctx).Query(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CatalogRepository) CategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.store.executor(ctx).QueryRow(ctx, "SELECT id, name FROM categories WHERE id = $1", id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, notFound(err, "category")
	}
	return &c, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *model.Category) error {
	c.ID = uuid.New()
	_, err := r.store.executor(ctx).Exec(ctx, "INSERT INTO categories (id, name) VALUES ($1, $2)", c.ID, c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

const productColumns = "id, category_name, name, seller_email, resale_price, attributes, created_at"

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.CategoryName, &p.Name, &p.SellerEmail, &p.ResalePrice, &p.Attributes, &p.CreatedAt)
	return p, err
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	if p.Attributes == nil {
		p.Attributes = map[string]any{}
	}
	_, err := r.store.executor(ctx).Exec(ctx,
		"INSERT INTO products ("+productColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		p.ID, p.CategoryName, p.Name, p.SellerEmail, p.ResalePrice, p.Attributes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ListProducts returns every product, or only those whose category_name
// equals categoryName when it is non-empty.
func (r *CatalogRepository) ListProducts(ctx context.Context, categoryName string) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var args []any
	if categoryName != "" {
		query += " WHERE category_name = $1"
		args = append(args, categoryName)
	}
	query += " ORDER BY created_at"

	rows, err := r.store.executor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *CatalogRepository) ProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := scanProduct(r.store.executor(ctx).QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "product")
	}
	return &p, nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.store.executor(ctx).Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CatalogRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.store.count(ctx, "SELECT COUNT(*) FROM products")
}
