package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus type for order status
type OrderStatus string

const (
	OrderOpen      OrderStatus = "OPEN"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether the status has no outgoing transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order represents orders table. TotalPrice is derived from the order's
// line items and must never be written by callers.
type Order struct {
	OrderID    uint            `gorm:"primaryKey;column:order_id" json:"id"`
	ClientName string          `gorm:"type:varchar(100);not null" json:"client_name"`
	CarModel   string          `gorm:"type:varchar(100);not null" json:"car_model"`
	CarNumber  string          `gorm:"type:varchar(20);not null" json:"car_number"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	EmployeeID uint            `gorm:"not null" json:"employee_id"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}
