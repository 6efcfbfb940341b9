package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/services"
)

// OrderController serves order resolution, item removal and order listing
type OrderController struct {
	resolution *services.ResolutionService
	closure    *services.ClosureService
	queries    *services.OrderQueries
}

// NewOrderController creates an order controller
func NewOrderController(resolution *services.ResolutionService, closure *services.ClosureService, queries *services.OrderQueries) *OrderController {
	return &OrderController{resolution: resolution, closure: closure, queries: queries}
}

// CreateOrderRequest represents the request body for adding items to a table's order
type CreateOrderRequest struct {
	TableID uint   `json:"table_id" binding:"required"`
	MenuIDs []uint `json:"menu_ids"`
}

// CreateOrder handles POST /api/v1/orders. It opens an order for the table (201)
// or merges the items into the one already open (200).
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	outcome, err := oc.resolution.Resolve(c.Request.Context(), req.TableID, req.MenuIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusOK
	if outcome.Kind == services.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"message": outcome.Kind.Message(),
		"data": gin.H{
			"order_id": outcome.OrderID,
			"outcome":  outcome.Kind.String(),
		},
	})
}

// ListOrders handles GET /api/v1/orders
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.queries.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// RemoveOrderItem handles DELETE /api/v1/orders/:table_id/items/:menu_id
func (oc *OrderController) RemoveOrderItem(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}
	menuID, ok := parseID(c, "menu_id")
	if !ok {
		return
	}

	outcome, err := oc.closure.RemoveItem(c.Request.Context(), tableID, menuID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": outcome.Kind.Message(),
		"data": gin.H{
			"order_id": outcome.OrderID,
			"outcome":  outcome.Kind.String(),
		},
	})
}
