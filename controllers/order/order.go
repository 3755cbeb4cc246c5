package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoStatusGiven     = errors.New("no status fields provided")
	ErrCartConflict      = errors.New("cart was modified during checkout")
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	Address       string `json:"address" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type UpdateOrderRequest struct {
	OrderID       uint   `json:"orderId" binding:"required"`
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
}

// -------- Helpers --------

// generateOrderRef yields a unique human-sortable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// initialStatuses derives the starting order/payment statuses from the payment
// method. Cash is pay-on-delivery, so the order goes straight to Processing
// with payment outstanding; card payments are captured upstream before the
// order reaches us.
func initialStatuses(method models.PaymentMethod) (models.OrderStatus, models.PaymentStatus) {
	if method == models.PaymentMethodCash {
		return models.OrderStatusProcessing, models.PaymentStatusPending
	}
	return models.OrderStatusPending, models.PaymentStatusPaid
}

// -------- Core Logic --------

// PlaceOrder converts the buyer's cart into an immutable order. The whole
// pipeline runs in one transaction: the order row is created first so every
// item carries its order id from birth, stock is decremented with a
// conditional update, and the cart is emptied (the cart row itself survives).
// Any failure rolls the entire checkout back.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		orderStatus, paymentStatus := initialStatuses(method)
		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        userID,
			Address:       req.Address,
			Phone:         req.PhoneNumber,
			OrderStatus:   orderStatus,
			PaymentStatus: paymentStatus,
			PaymentMethod: method,
			Currency:      models.DefaultCurrency,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total int64
		for _, item := range cart.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, item.Product.ProductName)
			}

			orderItem := models.OrderItem{
				OrderID:    order.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				TotalPrice: int64(item.Quantity) * item.Product.ActualPrice,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
			total += orderItem.TotalPrice
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_amount", total).Error; err != nil {
			return err
		}
		order.TotalAmount = total

		// Empty the cart, keep the cart row. Under read committed a
		// concurrent checkout of the same cart can slip past the stock
		// check; if it already consumed any of these lines the delete
		// comes up short, and the whole order must roll back rather than
		// charge the buyer twice.
		res := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(cart.Items)) {
			return ErrCartConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMyOrders returns the buyer's own orders, newest first.
func ListMyOrders(db *gorm.DB, userID uint, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := db.Where("user_id = ?", userID).
		Preload("Items.Product.Category").
		Preload("Items.Product.Seller").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

// sellerOrderIDs selects orders containing at least one line whose product
// belongs to the seller.
func sellerOrderIDs(db *gorm.DB, sellerID uint) *gorm.DB {
	return db.Model(&models.OrderItem{}).
		Select("order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID)
}

// ListSellerOrders returns orders visible to the seller: those with at least
// one item whose product the seller owns. Reads may be stale under concurrent
// checkouts; that is acceptable for this view.
func ListSellerOrders(db *gorm.DB, sellerID uint, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := db.Model(&models.Order{}).
		Where("id IN (?)", sellerOrderIDs(db, sellerID)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := db.Where("id IN (?)", sellerOrderIDs(db, sellerID)).
		Preload("User").
		Preload("Items.Product.Category").
		Preload("Items.Product.Seller").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

// ListAllOrders returns every order, admin scope.
func ListAllOrders(db *gorm.DB, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := db.Preload("User").
		Preload("Items.Product").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

// UpdateOrderStatus overwrites the order and/or payment status. Values must be
// members of the declared enums, but no transition ordering is enforced:
// any valid status may replace any other, matching how fulfilment staff
// actually use the dashboard.
func UpdateOrderStatus(db *gorm.DB, req UpdateOrderRequest) error {
	if req.OrderStatus == "" && req.PaymentStatus == "" {
		return ErrNoStatusGiven
	}

	updates := map[string]interface{}{}
	if req.OrderStatus != "" {
		status, err := models.ParseOrderStatus(req.OrderStatus)
		if err != nil {
			return err
		}
		updates["order_status"] = status
	}
	if req.PaymentStatus != "" {
		status, err := models.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return err
		}
		updates["payment_status"] = status
	}

	res := db.Model(&models.Order{}).Where("id = ?", req.OrderID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// DeleteOrder removes an order and its items in one transaction.
func DeleteOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// -------- Handlers --------

// POST /order/place
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "address, phoneNumber and paymentMethod are required"})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
			case errors.Is(err, models.ErrInvalidPaymentMethod):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment method"})
			case errors.Is(err, ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.Is(err, ErrCartConflict):
				c.JSON(http.StatusConflict, gin.H{"message": "Cart changed during checkout. Try again"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! Something went wrong. Try again"})
			}
			return
		}

		message := "Order placed successfully. Awaiting payment confirmation."
		if order.PaymentMethod == models.PaymentMethodCash {
			message = "Order placed successfully. Pay in cash upon delivery."
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":     message,
			"orderId":     order.ID,
			"orderRef":    order.OrderRef,
			"totalAmount": order.TotalAmount,
		})
	}
}

// GET /order/myorders
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		page, limit := middleware.Pagination(c)
		orders, total, err := ListMyOrders(db, userID, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order":       orders,
			"currentPage": page,
			"totalOrders": total,
		})
	}
}

// GET /order/orders
func GetSellerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		page, limit := middleware.Pagination(c)
		orders, total, err := ListSellerOrders(db, sellerID, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,
			"currentPage": page,
			"totalPages":  (total + int64(limit) - 1) / int64(limit),
			"totalOrders": total,
		})
	}
}

// GET /order/all
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := middleware.Pagination(c)
		orders, total, err := ListAllOrders(db, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,
			"currentPage": page,
			"totalPages":  (total + int64(limit) - 1) / int64(limit),
			"totalOrders": total,
		})
	}
}

// PUT /order/update
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "orderId is required"})
			return
		}

		if err := UpdateOrderStatus(db, req); err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidOrderStatus),
				errors.Is(err, models.ErrInvalidPaymentStatus),
				errors.Is(err, ErrNoStatusGiven):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! Something went wrong. Try again"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully"})
	}
}

// DELETE /order/delete/:orderId
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "orderId is required"})
			return
		}

		if err := DeleteOrder(db, uint(orderID)); err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!!! Something went wrong. Try again"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully", "deletedOrderId": orderID})
	}
}
