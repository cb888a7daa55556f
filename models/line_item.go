package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind type for the two line-item variants
type ItemKind string

const (
	ItemKindPart    ItemKind = "part"
	ItemKindService ItemKind = "service"
)

// LineItem represents order_line_items table. Exactly one of PartID and
// ServiceID is set, matching Kind. UnitPrice is snapshotted from the
// catalog at creation time and is immune to later catalog price edits.
// Part-kind items carry the token of the stock reservation they hold.
type LineItem struct {
	LineItemID       uint            `gorm:"primaryKey;column:line_item_id" json:"id"`
	OrderID          uint            `gorm:"not null;index" json:"order_id"`
	Kind             ItemKind        `gorm:"type:varchar(10);not null" json:"kind"`
	PartID           *uint           `json:"part_id,omitempty"`
	ServiceID        *uint           `json:"service_id,omitempty"`
	Quantity         int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ReservationToken *string         `gorm:"type:varchar(36)" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TableName specifies the table name for LineItem
func (LineItem) TableName() string {
	return "order_line_items"
}

// ReservationStatus type for stock reservation lifecycle
type ReservationStatus string

const (
	ReservationActive   ReservationStatus = "active"
	ReservationReleased ReservationStatus = "released"
)

// StockReservation represents stock_reservations table: the durable record
// behind a reservation token. A token is redeemable for a release exactly
// once; the status column is the idempotency guard.
type StockReservation struct {
	ReservationID uint              `gorm:"primaryKey;column:reservation_id" json:"id"`
	Token         string            `gorm:"type:varchar(36);not null;uniqueIndex" json:"token"`
	PartID        uint              `gorm:"not null;index" json:"part_id"`
	Quantity      int               `gorm:"not null;check:quantity > 0" json:"quantity"`
	Status        ReservationStatus `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	ReleasedAt    *time.Time        `json:"released_at,omitempty"`
}

// TableName specifies the table name for StockReservation
func (StockReservation) TableName() string {
	return "stock_reservations"
}
