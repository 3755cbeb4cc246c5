package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/cache"
	orderControllers "github.com/Manish34474/TradeNest/controllers/order"
	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, store *cache.Store) {
	orders := r.Group("/order")
	orders.Use(middleware.ValidateToken)
	{
		// Buyer-facing
		orders.POST("/place",
			middleware.RequireRole(models.RoleBuyer),
			orderControllers.PlaceOrderHandler(db))
		orders.GET("/myorders",
			middleware.RequireRole(models.RoleBuyer),
			orderControllers.GetMyOrdersHandler(db))

		// Seller-facing
		orders.GET("/orders",
			middleware.RequireRole(models.RoleSeller),
			orderControllers.GetSellerOrdersHandler(db))

		// Seller/admin
		orders.GET("/stats",
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			orderControllers.GetStatsHandler(db, store))
		orders.GET("/export",
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			orderControllers.ExportOrdersToExcel(db))
		orders.PUT("/update",
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			orderControllers.UpdateOrderStatusHandler(db))

		// Admin only
		orders.GET("/all",
			middleware.RequireRole(models.RoleAdmin),
			orderControllers.GetAllOrdersHandler(db))
		orders.DELETE("/delete/:orderId",
			middleware.RequireRole(models.RoleAdmin),
			orderControllers.DeleteOrderHandler(db))
	}
}
