package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/medgear/medgear_api/internal/models"
)

// GalleryRepository handles data access for gallery items and projects.
type GalleryRepository struct {
	db *sqlx.DB
}

// NewGalleryRepository creates a new GalleryRepository.
func NewGalleryRepository(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// ListGallery returns all gallery items in display order.
func (r *GalleryRepository) ListGallery() ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	if err := r.db.Select(&items, `SELECT * FROM gallery ORDER BY sort_order, id`); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateGalleryItem inserts a new gallery item.
func (r *GalleryRepository) CreateGalleryItem(item *models.GalleryItem) error {
	const q = `
		INSERT INTO gallery (title, description, image_url, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(q, item.Title, item.Description, item.ImageURL, item.SortOrder).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// UpdateGalleryItem updates an existing gallery item.
func (r *GalleryRepository) UpdateGalleryItem(item *models.GalleryItem) error {
	const q = `
		UPDATE gallery SET title = $1, description = $2, image_url = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`
	err := r.db.QueryRow(q, item.Title, item.Description, item.ImageURL, item.SortOrder, item.ID).
		Scan(&item.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// DeleteGalleryItem deletes a gallery item by id.
func (r *GalleryRepository) DeleteGalleryItem(id int) error {
	_, err := r.db.Exec(`DELETE FROM gallery WHERE id = $1`, id)
	return err
}

// ListProjects returns all reference projects in display order.
func (r *GalleryRepository) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Select(&projects, `SELECT * FROM projects ORDER BY sort_order, id`); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject inserts a new project record.
func (r *GalleryRepository) CreateProject(p *models.Project) error {
	const q = `
		INSERT INTO projects (title, description, image_url, client_name, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(q, p.Title, p.Description, p.ImageURL, p.ClientName, p.SortOrder).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// UpdateProject updates an existing project record.
func (r *GalleryRepository) UpdateProject(p *models.Project) error {
	const q = `
		UPDATE projects SET title = $1, description = $2, image_url = $3, client_name = $4, sort_order = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`
	err := r.db.QueryRow(q, p.Title, p.Description, p.ImageURL, p.ClientName, p.SortOrder, p.ID).
		Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// DeleteProject deletes a project by id.
func (r *GalleryRepository) DeleteProject(id int) error {
	_, err := r.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	return err
}
