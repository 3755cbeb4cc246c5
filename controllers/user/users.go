package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

// GET /user/all
func GetUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := middleware.Pagination(c)

		var total int64
		if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}

		var users []models.User
		if err := db.Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":       users,
			"currentPage": page,
			"totalPages":  (total + int64(limit) - 1) / int64(limit),
			"totalUsers":  total,
		})
	}
}

// GET /user/me
func GetMeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
