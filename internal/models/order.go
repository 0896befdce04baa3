package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

type Order struct {
	gorm.Model
	Number          string      `gorm:"uniqueIndex;not null" json:"number"`
	UserID          uint        `gorm:"index;not null" json:"user_id"`
	User            User        `json:"-"`
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shipping_address"`
	Status          OrderStatus `gorm:"not null;default:pending" json:"status"`
	TotalPrice      float64     `gorm:"not null" json:"total_price"`
	TrackingNumber  string      `json:"tracking_number,omitempty"`
	PaymentIntentID string      `json:"-"`
	PaidAt          *time.Time  `json:"paid_at,omitempty"`
}

// OrderItem captures the unit price at purchase time so later catalog
// price changes do not rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

func IsValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}
