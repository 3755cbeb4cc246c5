package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/Manish34474/TradeNest/controllers/category"
	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

func SetupCategoryRoutes(r *gin.Engine, db *gorm.DB) {
	categories := r.Group("/category")
	{
		categories.GET("/all", categoryControllers.GetCategoriesHandler(db))
		categories.GET("/:slug", categoryControllers.GetCategoryHandler(db))

		categories.POST("/create",
			middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin),
			categoryControllers.CreateCategoryHandler(db))
		categories.PUT("/update",
			middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin),
			categoryControllers.UpdateCategoryHandler(db))
		categories.DELETE("/delete",
			middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin),
			categoryControllers.DeleteCategoryHandler(db))
	}
}
