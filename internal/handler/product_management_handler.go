package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// maxImageUploadBytes caps product image uploads at 5 MiB.
const maxImageUploadBytes = 5 << 20

// ProductManagementHandler handles back-office product CRUD endpoints.
// Routes using it are gated on the manage_products privilege.
type ProductManagementHandler struct {
	catalog  *service.CatalogService
	products *repository.ProductRepository
	images   *service.ImageService
}

// NewProductManagementHandler constructs a ProductManagementHandler.
func NewProductManagementHandler(catalog *service.CatalogService, products *repository.ProductRepository, images *service.ImageService) *ProductManagementHandler {
	return &ProductManagementHandler{catalog: catalog, products: products, images: images}
}

// productRequest is the create/update payload.
type productRequest struct {
	Name             string   `json:"name" binding:"required"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Price            string   `json:"price" binding:"required"`
	Category         string   `json:"category"`
	ImageURL         string   `json:"imageUrl"`
	AdditionalImages []string `json:"additionalImages"`
	InStock          *bool    `json:"inStock"`
	IsFeatured       bool     `json:"isFeatured"`
}

func (r *productRequest) toModel() (*models.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return nil, err
	}
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return &models.Product{
		Name:             r.Name,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Price:            price,
		Category:         r.Category,
		ImageURL:         r.ImageURL,
		AdditionalImages: pq.StringArray(r.AdditionalImages),
		InStock:          inStock,
		IsFeatured:       r.IsFeatured,
	}, nil
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductManagementHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := req.toModel()
	if err != nil {
		utils.Error(c, 400, "INVALID_PRICE", "Price must be a decimal string")
		return
	}

	if err := h.catalog.CreateProduct(product); err != nil {
		switch err {
		case utils.ErrMissingName:
			utils.Error(c, 400, "MISSING_NAME", "Product name is required")
		case utils.ErrNegativePrice:
			utils.Error(c, 400, "NEGATIVE_PRICE", "Price must not be negative")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		}
		return
	}

	utils.Success(c, 201, "Product created successfully", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductManagementHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := req.toModel()
	if err != nil {
		utils.Error(c, 400, "INVALID_PRICE", "Price must be a decimal string")
		return
	}
	product.ID = id

	if err := h.catalog.UpdateProduct(product); err != nil {
		switch err {
		case utils.ErrMissingName:
			utils.Error(c, 400, "MISSING_NAME", "Product name is required")
		case utils.ErrNegativePrice:
			utils.Error(c, 400, "NEGATIVE_PRICE", "Price must not be negative")
		default:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		}
		return
	}

	utils.Success(c, 200, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *ProductManagementHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}

	utils.Success(c, 200, "Product deleted successfully", nil)
}

// UploadProductImage handles POST /v1/admin/products/:id/image
// Accepts multipart form data with an "image" file field.
func (h *ProductManagementHandler) UploadProductImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	if _, err := h.products.GetByID(id); err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Image file is required")
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		utils.Error(c, 400, "FILE_TOO_LARGE", "Image must be 5MB or smaller")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to read image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to read image")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.images.UploadProductImage(c.Request.Context(), id, data, contentType)
	if err != nil {
		utils.Error(c, 502, "UPLOAD_FAILED", "Failed to store image")
		return
	}

	if err := h.products.UpdateImageURL(id, url); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product image")
		return
	}

	utils.Success(c, 200, "Image uploaded successfully", gin.H{
		"imageUrl": url,
	})
}
