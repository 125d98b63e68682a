package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/utils"
)

// ProductHandler serves the public catalog: product listings, detail pages,
// categories, gallery, and reference projects. No authentication.
type ProductHandler struct {
	products *repository.ProductRepository
	gallery  *repository.GalleryRepository
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *repository.ProductRepository, gallery *repository.GalleryRepository) *ProductHandler {
	return &ProductHandler{products: products, gallery: gallery}
}

// ListProducts handles GET /v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := &repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     1,
		Limit:    50,
	}
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}
	if featured := c.Query("featured"); featured != "" {
		f := featured == "true"
		filter.Featured = &f
	}
	if inStock := c.Query("inStock"); inStock != "" {
		s := inStock == "true"
		filter.InStock = &s
	}

	result, err := h.products.GetAll(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved", result.Products,
		result.Page, result.Limit, result.TotalItems)
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.products.GetByID(id)
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product retrieved", product)
}

// GetCategories handles GET /v1/products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.products.GetDistinctCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

// ListGallery handles GET /v1/gallery
func (h *ProductHandler) ListGallery(c *gin.Context) {
	items, err := h.gallery.ListGallery()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve gallery")
		return
	}
	utils.Success(c, 200, "Gallery retrieved", items)
}

// ListProjects handles GET /v1/projects
func (h *ProductHandler) ListProjects(c *gin.Context) {
	projects, err := h.gallery.ListProjects()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve projects")
		return
	}
	utils.Success(c, 200, "Projects retrieved", projects)
}
