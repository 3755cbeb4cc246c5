package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a claim value to a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleBuyer:
		return RoleBuyer, true
	case RoleSeller:
		return RoleSeller, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Roles     string    `gorm:"not null;default:'buyer'" json:"roles"` // comma-joined role list
	Active    bool      `gorm:"default:true" json:"active"`
	Cart      *Cart     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	Products  []Product `gorm:"foreignKey:SellerID" json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleSet expands the stored comma-joined roles column.
func (u *User) RoleSet() []Role {
	var roles []Role
	for _, part := range strings.Split(u.Roles, ",") {
		if r, ok := ParseRole(part); ok {
			roles = append(roles, r)
		}
	}
	return roles
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.RoleSet() {
		if r == role {
			return true
		}
	}
	return false
}
