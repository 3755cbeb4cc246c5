package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/Manish34474/TradeNest/controllers/product"
	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/product")
	{
		// Public catalog browsing
		products.GET("/all", productControllers.GetProductsHandler(db))
		products.GET("/:slug", productControllers.GetProductBySlugHandler(db))

		// Seller/admin catalog management
		products.POST("/create",
			middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller),
			productControllers.CreateProductHandler(db))
		products.PUT("/update",
			middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			productControllers.UpdateProductHandler(db))
		products.DELETE("/delete",
			middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			productControllers.DeleteProductHandler(db))
	}
}
