package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/services"
)

// MenuController serves menu item registration and photos
type MenuController struct {
	registry *services.RegistryService
}

// NewMenuController creates a menu controller
func NewMenuController(registry *services.RegistryService) *MenuController {
	return &MenuController{registry: registry}
}

// CreateMenuRequest represents the request body for registering a menu item
type CreateMenuRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateMenu handles POST /api/v1/menus
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	item, created, err := mc.registry.RegisterMenuItem(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"data":    item,
	})
}

// ListMenus handles GET /api/v1/menus
func (mc *MenuController) ListMenus(c *gin.Context) {
	items, err := mc.registry.ListMenuItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// UploadMenuImage handles POST /api/v1/menus/:id/image with a multipart "image" field
func (mc *MenuController) UploadMenuImage(c *gin.Context) {
	menuID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !mc.registry.ImagesEnabled() {
		respondServiceError(c, services.ErrImagesDisabled)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "NO_FILE", "An image file is required in the \"image\" field")
		return
	}

	item, err := mc.registry.AttachMenuImage(c.Request.Context(), menuID, fileHeader)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
