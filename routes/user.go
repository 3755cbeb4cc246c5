package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/Manish34474/TradeNest/controllers/user"
	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	users := r.Group("/user")
	users.Use(middleware.ValidateToken)
	{
		users.GET("/me", userControllers.GetMeHandler(db))
		users.GET("/all",
			middleware.RequireRole(models.RoleAdmin),
			userControllers.GetUsersHandler(db))
	}
}
