package models

import "time"

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryName string    `gorm:"not null" json:"category_name"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	Image        string    `json:"image"`
	Alt          string    `json:"alt"`
	Products     []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
