package core

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// PricingEngine composes catalog lookups, stock reservation and order
// persistence into single units of work. Every operation either commits all
// of its effects or none of them: a failed reservation never leaves a
// half-created line item, and a persisted line item is always reflected in
// its order's total within the same transaction.
type PricingEngine struct {
	db      *gorm.DB
	catalog *CatalogStore
	ledger  *StockLedger
}

// NewPricingEngine creates a pricing engine over the given database,
// catalog and ledger.
func NewPricingEngine(db *gorm.DB, catalog *CatalogStore, ledger *StockLedger) *PricingEngine {
	return &PricingEngine{db: db, catalog: catalog, ledger: ledger}
}

// KindFromRefs derives the line-item kind from the part/service reference
// pair. Exactly one of the two must be set; the check lives here so no
// caller has to duplicate it.
func KindFromRefs(partID, serviceID *uint) (models.ItemKind, uint, error) {
	switch {
	case partID != nil && serviceID == nil:
		return models.ItemKindPart, *partID, nil
	case serviceID != nil && partID == nil:
		return models.ItemKindService, *serviceID, nil
	default:
		return "", 0, &ValidationError{
			Field:  "kind",
			Reason: "exactly one of part_id and service_id must be set",
		}
	}
}

// AddLineItem prices and attaches a new line item to an open order. For
// part-kind items it reserves stock and stores the reservation token with
// the item; the unit price is snapshotted from the catalog at this moment
// and never changes afterwards.
func (e *PricingEngine) AddLineItem(orderID uint, kind models.ItemKind, refID uint, quantity int) (*models.LineItem, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if kind != models.ItemKindPart && kind != models.ItemKindService {
		return nil, &ValidationError{Field: "kind", Reason: `must be "part" or "service"`}
	}

	item := &models.LineItem{OrderID: orderID, Kind: kind, Quantity: quantity}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOpenOrder(tx, orderID); err != nil {
			return err
		}

		switch kind {
		case models.ItemKindPart:
			part, err := getPart(tx, refID)
			if err != nil {
				return err
			}
			token, err := e.ledger.Reserve(tx, refID, quantity)
			if err != nil {
				return err
			}
			partID := refID
			item.PartID = &partID
			item.ReservationToken = &token
			item.UnitPrice = part.Price
		case models.ItemKindService:
			service, err := getService(tx, refID)
			if err != nil {
				return err
			}
			serviceID := refID
			item.ServiceID = &serviceID
			item.UnitPrice = service.Price
		}

		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return e.writeTotal(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveLineItem deletes a line item from an open order, releasing its
// stock reservation if it holds one, and recomputes the order total.
func (e *PricingEngine) RemoveLineItem(itemID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		item, err := loadLineItem(tx, itemID)
		if err != nil {
			return err
		}
		if err := lockOpenOrder(tx, item.OrderID); err != nil {
			return err
		}
		if item.ReservationToken != nil {
			if err := e.ledger.Release(tx, *item.ReservationToken); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.LineItem{}, itemID).Error; err != nil {
			return err
		}
		return e.writeTotal(tx, item.OrderID)
	})
}

// UpdateLineItemQuantity changes a line item's quantity. A part-kind item
// swaps its reservation: the old one is released and a fresh one taken for
// the new quantity, all inside one transaction, so an insufficient-stock
// failure leaves everything untouched. The price snapshot is kept.
func (e *PricingEngine) UpdateLineItemQuantity(itemID uint, quantity int) (*models.LineItem, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	var item *models.LineItem
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if item, err = loadLineItem(tx, itemID); err != nil {
			return err
		}
		if err := lockOpenOrder(tx, item.OrderID); err != nil {
			return err
		}

		updates := map[string]interface{}{"quantity": quantity}
		if item.Kind == models.ItemKindPart {
			if item.ReservationToken != nil {
				if err := e.ledger.Release(tx, *item.ReservationToken); err != nil {
					return err
				}
			}
			token, err := e.ledger.Reserve(tx, *item.PartID, quantity)
			if err != nil {
				return err
			}
			item.ReservationToken = &token
			updates["reservation_token"] = token
		}
		item.Quantity = quantity
		if err := tx.Model(&models.LineItem{}).
			Where("line_item_id = ?", itemID).
			Updates(updates).Error; err != nil {
			return err
		}
		return e.writeTotal(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetLineItem returns a single line item.
func (e *PricingEngine) GetLineItem(itemID uint) (*models.LineItem, error) {
	return loadLineItem(e.db, itemID)
}

// RecalcOrderTotal recomputes an order's total from its current line items
// and returns it. The stored value is only rewritten while the order is
// open; terminal orders keep their frozen total (which, with immutable line
// items, equals the recomputed sum anyway).
func (e *PricingEngine) RecalcOrderTotal(orderID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := e.db.Transaction(func(tx *gorm.DB) error {
		lockErr := lockOpenOrder(tx, orderID)
		var stateErr *StateError
		if lockErr != nil && !errors.As(lockErr, &stateErr) {
			return lockErr
		}
		var err error
		if total, err = orderTotal(tx, orderID); err != nil {
			return err
		}
		if lockErr != nil {
			return nil
		}
		return tx.Model(&models.Order{}).
			Where("order_id = ?", orderID).
			UpdateColumn("total_price", total).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CheckPartAvailability reports whether qty units of the part are on hand.
func (e *PricingEngine) CheckPartAvailability(partID uint, qty int) (bool, int, error) {
	return e.ledger.Availability(e.db, partID, qty)
}

// writeTotal recomputes and persists the order total. The caller holds the
// order's row lock through lockOpenOrder, so the sum cannot be invalidated
// by a concurrent commit before this transaction finishes.
func (e *PricingEngine) writeTotal(tx *gorm.DB, orderID uint) error {
	total, err := orderTotal(tx, orderID)
	if err != nil {
		return err
	}
	return tx.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		UpdateColumn("total_price", total).Error
}

func loadLineItem(tx *gorm.DB, id uint) (*models.LineItem, error) {
	var item models.LineItem
	if err := tx.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "line item", ID: id}
		}
		return nil, err
	}
	return &item, nil
}
