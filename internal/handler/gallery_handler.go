package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// GalleryHandler handles back-office gallery and project management.
// Routes using it are gated on the manage_products privilege.
type GalleryHandler struct {
	catalog *service.CatalogService
	images  *service.ImageService
}

// NewGalleryHandler constructs a GalleryHandler.
func NewGalleryHandler(catalog *service.CatalogService, images *service.ImageService) *GalleryHandler {
	return &GalleryHandler{catalog: catalog, images: images}
}

// CreateGalleryItem handles POST /v1/admin/gallery
func (h *GalleryHandler) CreateGalleryItem(c *gin.Context) {
	var item models.GalleryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.catalog.CreateGalleryItem(&item); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create gallery item")
		return
	}

	utils.Success(c, 201, "Gallery item created", item)
}

// UpdateGalleryItem handles PUT /v1/admin/gallery/:id
func (h *GalleryHandler) UpdateGalleryItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid gallery item ID")
		return
	}

	var item models.GalleryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	item.ID = id

	if err := h.catalog.UpdateGalleryItem(&item); err != nil {
		utils.Error(c, 404, "GALLERY_ITEM_NOT_FOUND", "Gallery item not found")
		return
	}

	utils.Success(c, 200, "Gallery item updated", item)
}

// DeleteGalleryItem handles DELETE /v1/admin/gallery/:id
func (h *GalleryHandler) DeleteGalleryItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid gallery item ID")
		return
	}

	if err := h.catalog.DeleteGalleryItem(id); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete gallery item")
		return
	}

	utils.Success(c, 200, "Gallery item deleted", nil)
}

// UploadImage handles POST /v1/admin/gallery/upload
// Stores an image and returns its URL for use in gallery items or projects.
func (h *GalleryHandler) UploadImage(c *gin.Context) {
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

	url, err := h.images.UploadGalleryImage(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		utils.Error(c, 502, "UPLOAD_FAILED", "Failed to store image")
		return
	}

	utils.Success(c, 200, "Image uploaded successfully", gin.H{
		"imageUrl": url,
	})
}

// CreateProject handles POST /v1/admin/projects
func (h *GalleryHandler) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.catalog.CreateProject(&project); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create project")
		return
	}

	utils.Success(c, 201, "Project created", project)
}

// UpdateProject handles PUT /v1/admin/projects/:id
func (h *GalleryHandler) UpdateProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid project ID")
		return
	}

	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	project.ID = id

	if err := h.catalog.UpdateProject(&project); err != nil {
		utils.Error(c, 404, "PROJECT_NOT_FOUND", "Project not found")
		return
	}

	utils.Success(c, 200, "Project updated", project)
}

// DeleteProject handles DELETE /v1/admin/projects/:id
func (h *GalleryHandler) DeleteProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid project ID")
		return
	}

	if err := h.catalog.DeleteProject(id); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete project")
		return
	}

	utils.Success(c, 200, "Project deleted", nil)
}
