package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/services"
)

// TableController serves table registration and the per-table order views
type TableController struct {
	registry *services.RegistryService
	queries  *services.OrderQueries
}

// NewTableController creates a table controller
func NewTableController(registry *services.RegistryService, queries *services.OrderQueries) *TableController {
	return &TableController{registry: registry, queries: queries}
}

// CreateTableRequest represents the request body for registering a table
type CreateTableRequest struct {
	Code string `json:"code" binding:"required"`
}

// CreateTable handles POST /api/v1/tables. Registering an existing code answers
// 200 with the existing table.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	table, created, err := tc.registry.RegisterTable(c.Request.Context(), req.Code)
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
		"data":    table,
	})
}

// ListTables handles GET /api/v1/tables
func (tc *TableController) ListTables(c *gin.Context) {
	tables, err := tc.registry.ListTables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tables,
	})
}

// GetTableOrder handles GET /api/v1/tables/:id/order
func (tc *TableController) GetTableOrder(c *gin.Context) {
	tableID, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := tc.queries.GetOrderForTable(c.Request.Context(), tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListTableItems handles GET /api/v1/tables/:id/items
func (tc *TableController) ListTableItems(c *gin.Context) {
	tableID, ok := parseID(c, "id")
	if !ok {
		return
	}

	items, err := tc.queries.ListTableItems(c.Request.Context(), tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetTableItem handles GET /api/v1/tables/:id/items/:menu_id
func (tc *TableController) GetTableItem(c *gin.Context) {
	tableID, ok := parseID(c, "id")
	if !ok {
		return
	}
	menuID, ok := parseID(c, "menu_id")
	if !ok {
		return
	}

	item, err := tc.queries.GetTableItem(c.Request.Context(), tableID, menuID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
