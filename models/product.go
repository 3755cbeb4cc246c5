package models

import (
	"strings"
	"time"
)

type Product struct {
	ID             uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName    string   `gorm:"not null" json:"product_name"`
	Slug           string   `gorm:"uniqueIndex;not null" json:"slug"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Alt            string   `json:"alt"`
	CategoryID     uint     `gorm:"index;not null" json:"category_id"`
	Category       Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SellerID       uint     `gorm:"index;not null" json:"seller_id"`
	Seller         User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Specifications []string `gorm:"serializer:json" json:"specifications"`

	// Prices are integer minor units. ActualPrice is derived and must be
	// recomputed on every price/discount change, never stored stale.
	Price       int64 `gorm:"not null" json:"price"`
	Discount    int64 `gorm:"default:0" json:"discount"` // percent
	ActualPrice int64 `gorm:"not null" json:"actual_price"`

	Stock     int       `gorm:"not null" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeActualPrice applies the discount percentage to a list price, flooring the
// result: floor(price - discount/100 * price), in integer arithmetic.
func ComputeActualPrice(price, discount int64) int64 {
	if discount <= 0 {
		return price
	}
	return price - (discount*price+99)/100
}

// Slugify normalizes a display name into a URL slug: trim, lowercase,
// whitespace runs collapsed to a single hyphen.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}
