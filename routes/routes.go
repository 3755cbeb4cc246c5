package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/cache"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *cache.Store) {
	SetupCartRoutes(r, db)
	SetupOrderRoutes(r, db, store)
	SetupProductRoutes(r, db)
	SetupCategoryRoutes(r, db)
	SetupUserRoutes(r, db)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
