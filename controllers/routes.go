package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/ledger"
	"github.com/kendall-kelly/table-orders-api/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Controllers bundles every HTTP handler of the API
type Controllers struct {
	Tables *TableController
	Menus  *MenuController
	Orders *OrderController
}

// RegisterRoutes mounts the API handlers on the v1 group
func (h *Controllers) RegisterRoutes(v1 *gin.RouterGroup) {
	tables := v1.Group("/tables")
	{
		tables.POST("", h.Tables.CreateTable)
		tables.GET("", h.Tables.ListTables)
		tables.GET("/:id/order", h.Tables.GetTableOrder)
		tables.GET("/:id/items", h.Tables.ListTableItems)
		tables.GET("/:id/items/:menu_id", h.Tables.GetTableItem)
	}

	menus := v1.Group("/menus")
	{
		menus.POST("", h.Menus.CreateMenu)
		menus.GET("", h.Menus.ListMenus)
		menus.POST("/:id/image", h.Menus.UploadMenuImage)
	}

	orders := v1.Group("/orders")
	{
		orders.POST("", h.Orders.CreateOrder)
		orders.GET("", h.Orders.ListOrders)
		orders.DELETE("/:table_id/items/:menu_id", h.Orders.RemoveOrderItem)
	}
}

// Dependencies are what the handlers need from the rest of the application
type Dependencies struct {
	DB         *gorm.DB
	Images     services.ImageService // nil disables menu photos
	Estimator  services.CookingTimeEstimator
	Dispatcher events.Dispatcher
	Log        *logrus.Logger
}

// New wires the services over deps and returns the handlers
func New(deps Dependencies) *Controllers {
	l := ledger.New(deps.DB)
	registry := services.NewRegistryService(deps.DB, deps.Images, deps.Log)
	queries := services.NewOrderQueries(l)
	return &Controllers{
		Tables: NewTableController(registry, queries),
		Menus:  NewMenuController(registry),
		Orders: NewOrderController(
			services.NewResolutionService(l, deps.Estimator, deps.Dispatcher, deps.Log),
			services.NewClosureService(l, deps.Dispatcher, deps.Log),
			queries,
		),
	}
}
