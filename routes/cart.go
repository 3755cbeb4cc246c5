package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Manish34474/TradeNest/controllers/cart"
	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	cart.Use(middleware.ValidateToken, middleware.RequireRole(models.RoleBuyer))
	{
		cart.GET("/all", cartControllers.GetCartHandler(db))
		cart.POST("/add", cartControllers.AddToCartHandler(db))
		cart.PUT("/update", cartControllers.UpdateCartHandler(db))
		cart.DELETE("/delete", cartControllers.RemoveFromCartHandler(db))
	}
}
