package orderControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/cache"
	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

type Stats struct {
	TotalRevenue     int64 `json:"totalRevenue"`
	TotalActiveUsers int64 `json:"totalActiveUsers"`
	TotalOrders      int64 `json:"totalOrders"`
	TotalProducts    int64 `json:"totalProducts"`
}

// ComputeStats aggregates the dashboard numbers. Admins see the whole shop;
// sellers see revenue, orders and products scoped to their own catalog.
// Active-user counts are global either way.
func ComputeStats(db *gorm.DB, sellerID uint, admin bool) (*Stats, error) {
	var stats Stats

	if err := db.Model(&models.User{}).Where("active = ?", true).
		Count(&stats.TotalActiveUsers).Error; err != nil {
		return nil, err
	}

	if admin {
		if err := db.Model(&models.OrderItem{}).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&stats.TotalRevenue).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}

	if err := db.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(order_items.total_price), 0)").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID).
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("id IN (?)", sellerOrderIDs(db, sellerID)).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Where("seller_id = ?", sellerID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// GET /order/stats
func GetStatsHandler(db *gorm.DB, store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		admin := middleware.HasRole(c, models.RoleAdmin)

		key := fmt.Sprintf("order:stats:seller:%d", userID)
		if admin {
			key = "order:stats:admin"
		}

		var stats Stats
		if store.Get(c.Request.Context(), key, &stats) {
			c.JSON(http.StatusOK, stats)
			return
		}

		computed, err := ComputeStats(db, userID, admin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		store.Set(c.Request.Context(), key, computed)
		c.JSON(http.StatusOK, computed)
	}
}
