package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/models"
)

type DeleteProductRequest struct {
	ID uint `json:"id" binding:"required"`
}

// DeleteProduct removes a product unless it is still referenced by any cart
// line or order line. Past orders keep their product references, so a sold
// product can never be deleted out from under them.
func DeleteProduct(db *gorm.DB, productID uint) error {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	var refs int64
	if err := db.Model(&models.CartItem{}).Where("product_id = ?", productID).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs == 0 {
		if err := db.Model(&models.OrderItem{}).Where("product_id = ?", productID).
			Count(&refs).Error; err != nil {
			return err
		}
	}
	if refs > 0 {
		return ErrProductInUse
	}

	return db.Delete(&product).Error
}

// DELETE /product/delete
func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "id is required"})
			return
		}

		if err := DeleteProduct(db, req.ID); err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			case errors.Is(err, ErrProductInUse):
				c.JSON(http.StatusConflict, gin.H{"message": "Product is referenced by carts or orders and cannot be deleted"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
