package service

import (
	"strings"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/utils"
)

// CatalogService validates and persists catalog content: products, gallery
// items, and reference projects. Privilege gating happens at the route
// level; this layer owns input-shape rules only.
type CatalogService struct {
	products *repository.ProductRepository
	gallery  *repository.GalleryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products *repository.ProductRepository, gallery *repository.GalleryRepository) *CatalogService {
	return &CatalogService{products: products, gallery: gallery}
}

// CreateProduct validates and creates a product. Name and a non-negative
// price are the only required fields.
func (s *CatalogService) CreateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.products.Create(p)
}

// UpdateProduct validates and updates a product.
func (s *CatalogService) UpdateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.products.Update(p)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(id int) error {
	return s.products.Delete(id)
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return utils.ErrMissingName
	}
	if p.Price.IsNegative() {
		return utils.ErrNegativePrice
	}
	return nil
}

// CreateGalleryItem creates a gallery item.
func (s *CatalogService) CreateGalleryItem(item *models.GalleryItem) error {
	return s.gallery.CreateGalleryItem(item)
}

// UpdateGalleryItem updates a gallery item.
func (s *CatalogService) UpdateGalleryItem(item *models.GalleryItem) error {
	return s.gallery.UpdateGalleryItem(item)
}

// DeleteGalleryItem removes a gallery item.
func (s *CatalogService) DeleteGalleryItem(id int) error {
	return s.gallery.DeleteGalleryItem(id)
}

// CreateProject creates a reference project.
func (s *CatalogService) CreateProject(p *models.Project) error {
	return s.gallery.CreateProject(p)
}

// UpdateProject updates a reference project.
func (s *CatalogService) UpdateProject(p *models.Project) error {
	return s.gallery.UpdateProject(p)
}

// DeleteProject removes a reference project.
func (s *CatalogService) DeleteProject(id int) error {
	return s.gallery.DeleteProject(id)
}
