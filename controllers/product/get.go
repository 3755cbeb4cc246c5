package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

// GET /product/all
func GetProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := middleware.Pagination(c)

		var total int64
		if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! something went wrong. Try again"})
			return
		}

		var products []models.Product
		if err := db.Preload("Category").Preload("Seller").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! something went wrong. Try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":      products,
			"currentPage":   page,
			"totalPages":    (total + int64(limit) - 1) / int64(limit),
			"totalProducts": total,
		})
	}
}

// GET /product/:slug
func GetProductBySlugHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var product models.Product
		if err := db.Preload("Category").Preload("Seller").
			Where("slug = ?", slug).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! something went wrong. Try again"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}
