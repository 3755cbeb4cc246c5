package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

var (
	ErrProductNotFound  = errors.New("product does not exist")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity cannot be less than or equal to 0")
)

type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

type UpdateCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type RemoveFromCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// -------- Core Logic --------

// GetCart loads the user's cart with product details. A missing cart is not an
// error; the caller gets an empty cart shape.
func GetCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// AddToCart adds one unit of the product to the user's cart, creating the cart
// lazily. The insert-or-increment is a single conditional write on the
// (cart_id, product_id) unique index, so concurrent adds cannot produce
// duplicate rows or lose an increment.
func AddToCart(db *gorm.DB, userID, productID uint) error {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	// Lazy cart creation rides the user_id unique index: if two first-time
	// adds race, one insert is a no-op and both fall through to the re-read.
	cart := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		return err
	}
	if cart.ID == 0 {
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  1,
		AddedAt:   time.Now(),
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + 1"),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
}

// UpdateCart sets the quantity of an existing cart line. Quantities must be
// strictly positive; removal goes through RemoveFromCart.
func UpdateCart(db *gorm.DB, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	res := db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveFromCart deletes the cart line for the product.
func RemoveFromCart(db *gorm.DB, userID, productID uint) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	res := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// -------- Handlers --------

// GET /cart/all
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		cart, err := GetCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// POST /cart/add
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
			return
		}

		if err := AddToCart(db, userID, req.ProductID); err != nil {
			if errors.Is(err, ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! Something went wrong. Try again"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added to cart"})
	}
}

// PUT /cart/update
func UpdateCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var req UpdateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId and quantity are required"})
			return
		}

		if err := UpdateCart(db, userID, req.ProductID, req.Quantity); err != nil {
			switch {
			case errors.Is(err, ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Insert valid value, quantity cannot be less than or equal to 0"})
			case errors.Is(err, ErrCartItemNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! Something went wrong. Try again"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully"})
	}
}

// DELETE /cart/delete
func RemoveFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var req RemoveFromCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
			return
		}

		if err := RemoveFromCart(db, userID, req.ProductID); err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! Something went wrong. Try again"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}
