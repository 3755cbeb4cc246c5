package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "Pending"    // placed, awaiting payment confirmation
	OrderStatusProcessing OrderStatus = "Processing" // being prepared by the seller
	OrderStatusShipped    OrderStatus = "Shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "Delivered"  // received by the buyer
	OrderStatusCancelled  OrderStatus = "Cancelled"  // cancelled before delivery

	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"

	PaymentMethodCash PaymentMethod = "Cash" // pay on delivery
	PaymentMethodCard PaymentMethod = "Card"

	DefaultCurrency = "GBP"
)

var (
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(s) {
	case strings.ToLower(string(OrderStatusPending)):
		return OrderStatusPending, nil
	case strings.ToLower(string(OrderStatusProcessing)):
		return OrderStatusProcessing, nil
	case strings.ToLower(string(OrderStatusShipped)):
		return OrderStatusShipped, nil
	case strings.ToLower(string(OrderStatusDelivered)):
		return OrderStatusDelivered, nil
	case strings.ToLower(string(OrderStatusCancelled)):
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToLower(s) {
	case strings.ToLower(string(PaymentStatusPending)):
		return PaymentStatusPending, nil
	case strings.ToLower(string(PaymentStatusPaid)):
		return PaymentStatusPaid, nil
	case strings.ToLower(string(PaymentStatusFailed)):
		return PaymentStatusFailed, nil
	case strings.ToLower(string(PaymentStatusRefunded)):
		return PaymentStatusRefunded, nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(s) {
	case strings.ToLower(string(PaymentMethodCash)):
		return PaymentMethodCash, nil
	case strings.ToLower(string(PaymentMethodCard)):
		return PaymentMethodCard, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Order is immutable after checkout except for the two status columns.
type Order struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef      string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID        uint          `gorm:"index;not null" json:"user_id"`
	User          User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	TotalAmount   int64         `gorm:"not null;default:0" json:"total_amount"`
	Address       string        `gorm:"not null" json:"address"`
	Phone         string        `gorm:"not null" json:"phone"`
	OrderStatus   OrderStatus   `gorm:"type:VARCHAR(20);default:'Pending'" json:"order_status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	Currency      string        `gorm:"default:'GBP'" json:"currency"`
	CreatedAt     time.Time     `json:"created_at"`
}

// OrderItem fixes the product price at the moment of checkout. TotalPrice is
// quantity * actualPrice as of placement and is never recomputed.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint    `gorm:"index;not null" json:"order_id"`
	ProductID  uint    `gorm:"index;not null" json:"product_id"`
	Product    Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	TotalPrice int64   `gorm:"not null" json:"total_price"`
}
