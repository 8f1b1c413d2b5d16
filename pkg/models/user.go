package models

import (
	"slices"
	"strings"
)

// User represents a member of the heritage registry
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email" validate:"required,email"`
	PasswordHash string   `json:"-"` // Never expose in JSON
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	IsAdmin      bool     `json:"isAdmin"`
	IsApproved   bool     `json:"isApproved"`
	IsSubscribed bool     `json:"isSubscribed"`
	Wishlist     []string `json:"wishlist"` // Product IDs
	OrderHistory []Order  `json:"orderHistory"`
}

// Clone returns a deep copy of the user
func (u User) Clone() User {
	c := u
	c.Wishlist = slices.Clone(u.Wishlist)
	if u.OrderHistory != nil {
		c.OrderHistory = make([]Order, len(u.OrderHistory))
		for i, o := range u.OrderHistory {
			c.OrderHistory[i] = o.Clone()
		}
	}
	return c
}

// HasInWishlist reports whether the product id is on the wishlist
func (u *User) HasInWishlist(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// EmailMatches compares emails case-insensitively
func (u *User) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email))
}

// NormalizeEmail lowercases and trims an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is used by the curator's suite to add accounts directly
type CreateUserRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSubscribed bool   `json:"isSubscribed"`
}

// UpdateUserRequest carries the admin-editable account fields. Nil fields are left untouched.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	IsAdmin      *bool   `json:"isAdmin"`
	IsApproved   *bool   `json:"isApproved"`
	IsSubscribed *bool   `json:"isSubscribed"`
	// Password replaces the member's password when non-empty
	Password string `json:"password,omitempty"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name" binding:"required"`
	IsSubscribed bool   `json:"isSubscribed"`
}
