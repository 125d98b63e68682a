package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medgear/medgear_api/internal/models"
)

// ProductRepository handles data access for catalog products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter holds filters for catalog queries. Empty fields are ignored.
type ProductFilter struct {
	Category string
	Search   string
	Featured *bool
	InStock  *bool
	Page     int
	Limit    int
}

// ProductResult contains paginated product results.
type ProductResult struct {
	Products   []models.Product
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// GetAll returns products with filters and pagination.
func (r *ProductRepository) GetAll(filter *ProductFilter) (*ProductResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR short_description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Featured != nil {
		baseWhere += fmt.Sprintf(" AND is_featured = $%d", argIdx)
		args = append(args, *filter.Featured)
		argIdx++
	}
	if filter.InStock != nil {
		baseWhere += fmt.Sprintf(" AND in_stock = $%d", argIdx)
		args = append(args, *filter.InStock)
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM products ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, err
	}
	totalPages := (total + filter.Limit - 1) / filter.Limit

	listQuery := fmt.Sprintf(`SELECT * FROM products %s ORDER BY is_featured DESC, category, name LIMIT $%d OFFSET $%d`,
		baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var products []models.Product
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, err
	}

	return &ProductResult{
		Products:   products,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `
		INSERT INTO products (name, short_description, description, price, category,
			image_url, additional_images, in_stock, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		product.Name,
		product.ShortDescription,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.AdditionalImages,
		product.InStock,
		product.IsFeatured,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// Update updates an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `
		UPDATE products
		SET name = $1, short_description = $2, description = $3, price = $4,
			category = $5, image_url = $6, additional_images = $7,
			in_stock = $8, is_featured = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at`

	return r.db.QueryRowx(q,
		product.Name,
		product.ShortDescription,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.AdditionalImages,
		product.InStock,
		product.IsFeatured,
		product.ID,
	).Scan(&product.UpdatedAt)
}

// UpdateImageURL sets the primary image of a product.
func (r *ProductRepository) UpdateImageURL(id int, url string) error {
	const q = `UPDATE products SET image_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, url)
	return err
}

// Delete deletes a product by id.
func (r *ProductRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	return err
}

// GetDistinctCategories returns all distinct categories.
func (r *ProductRepository) GetDistinctCategories() ([]string, error) {
	const q = `SELECT DISTINCT category FROM products WHERE category != '' ORDER BY category`
	var categories []string
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}
