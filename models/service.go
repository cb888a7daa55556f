package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service represents services table. Services carry no stock concept;
// selecting one on an order never touches inventory.
type Service struct {
	ServiceID     uint            `gorm:"primaryKey;column:service_id" json:"id"`
	Name          string          `gorm:"type:varchar(200);not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;check:price >= 0" json:"price"`
	DurationHours float64         `gorm:"column:duration;not null;check:duration > 0" json:"duration"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Service
func (Service) TableName() string {
	return "services"
}
