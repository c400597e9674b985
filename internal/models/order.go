package models

import "gorm.io/gorm"

// Order statuses.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
)

// Order types.
const (
	OrderTypeBuy  = "buy"
	OrderTypeSell = "sell"
)

// Order is a customer order. Rate is the per-unit price locked at
// creation time; later market moves never touch it. Only Quantity,
// TotalAmount and Status may change after creation.
type Order struct {
	gorm.Model
	OrderID     string  `gorm:"uniqueIndex;not null" json:"orderId"`
	UserName    string  `json:"userName"`
	UserPhone   string  `json:"userPhone"`
	Type        string  `json:"type"` // "buy" or "sell"
	Item        string  `json:"item"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `gorm:"default:PENDING" json:"status"`
	Timestamp   int64   `json:"timestamp"`
}
