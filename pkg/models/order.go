package models

import (
	"math/rand/v2"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCompleted OrderStatus = "Completed"
)

// Contact holds the details a client leaves when requesting a consultation
type Contact struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Order is a submitted consultation request. The client never mutates it after creation.
type Order struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Items     []CartItem  `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	RefNumber string      `json:"refNumber"`
	Contact   Contact     `json:"contact"`
}

// Clone returns a deep copy of the order
func (o Order) Clone() Order {
	c := o
	c.Items = make([]CartItem, len(o.Items))
	for i, it := range o.Items {
		c.Items[i] = it.Clone()
	}
	return c
}

// GetItemCount returns the number of pieces in the order
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

const refAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateRefNumber returns a consultation reference.
// Format: ALX-XXXXXXX
func GenerateRefNumber() string {
	b := make([]byte, 7)
	for i := range b {
		b[i] = refAlphabet[rand.IntN(len(refAlphabet))]
	}
	return "ALX-" + string(b)
}
