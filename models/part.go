package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part represents parts table. Quantity is the on-hand stock and is only
// ever changed through restocks and ledger reservations, never set directly
// by order code.
type Part struct {
	PartID    uint            `gorm:"primaryKey;column:part_id" json:"id"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;check:price >= 0" json:"price"`
	Quantity  int             `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Supplier  *string         `gorm:"type:varchar(200)" json:"supplier,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Part
func (Part) TableName() string {
	return "parts"
}
