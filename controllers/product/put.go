package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/models"
)

type UpdateProductRequest struct {
	ID             uint     `json:"id" binding:"required"`
	ProductName    string   `json:"productName"`
	Alt            string   `json:"alt"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	CategoryID     uint     `json:"productCategory"`
	Specifications []string `json:"specifications"`
	Price          *int64   `json:"price"`
	Discount       *int64   `json:"discount"`
	Stock          *int     `json:"stock"`
}

// UpdateProduct applies the supplied fields. ActualPrice is recomputed
// whenever price or discount changes so it can never go stale; a renamed
// product gets a fresh slug subject to the uniqueness check.
func UpdateProduct(db *gorm.DB, req UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.ProductName != "" && req.ProductName != product.ProductName {
		slug := models.Slugify(req.ProductName)
		var count int64
		if err := db.Model(&models.Product{}).
			Where("slug = ? AND id <> ?", slug, product.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateSlug
		}
		product.ProductName = req.ProductName
		product.Slug = slug
	}

	if req.Alt != "" {
		product.Alt = req.Alt
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.CategoryID != 0 {
		var category models.Category
		if err := db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = req.CategoryID
	}
	if req.Specifications != nil {
		product.Specifications = req.Specifications
	}
	if req.Stock != nil {
		if *req.Stock <= 0 {
			return nil, ErrInvalidStock
		}
		product.Stock = *req.Stock
	}

	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Price != nil || req.Discount != nil {
		product.ActualPrice = models.ComputeActualPrice(product.Price, product.Discount)
	}

	if err := db.Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// PUT /product/update
func UpdateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "id is required"})
			return
		}

		if _, err := UpdateProduct(db, req); err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			case errors.Is(err, ErrInvalidStock):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Stock cannot be less than or equal to 0"})
			case errors.Is(err, ErrCategoryNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Category does not exist"})
			case errors.Is(err, ErrDuplicateSlug):
				c.JSON(http.StatusConflict, gin.H{"message": "Product already exists"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}
