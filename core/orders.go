package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// OrderStore owns order records and the OPEN -> COMPLETED/CANCELLED state
// machine. Both transitions are one-way and terminal; line-item mutation of
// a terminal order fails with a StateError.
type OrderStore struct {
	db     *gorm.DB
	ledger *StockLedger
}

// NewOrderStore creates an order store backed by the given database and
// stock ledger.
func NewOrderStore(db *gorm.DB, ledger *StockLedger) *OrderStore {
	return &OrderStore{db: db, ledger: ledger}
}

func loadOrder(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := tx.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "order", ID: id}
		}
		return nil, err
	}
	return &order, nil
}

// stateOrNotFound explains why a status-guarded order update matched no
// rows: either the order is gone or it already left OPEN.
func stateOrNotFound(tx *gorm.DB, id uint) error {
	order, err := loadOrder(tx, id)
	if err != nil {
		return err
	}
	return &StateError{OrderID: id, Status: order.Status}
}

// lockOpenOrder takes the order's row lock through a status-guarded touch
// update and fails when the order is gone or no longer open. Every mutation
// of an order's line items or total acquires it as its first write: under
// read committed the lock is what keeps a total computed later in the same
// transaction from being invalidated by a concurrent commit.
func lockOpenOrder(tx *gorm.DB, id uint) error {
	res := tx.Model(&models.Order{}).
		Where("order_id = ? AND status = ?", id, models.OrderOpen).
		UpdateColumn("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return stateOrNotFound(tx, id)
	}
	return nil
}

// orderTotal computes the sum of quantity * snapshotted unit price over the
// order's line items. The arithmetic runs in Go on decimals, not in SQL,
// so both database drivers produce the exact same cents.
func orderTotal(tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	var items []models.LineItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

func validateOrderFields(order *models.Order) error {
	if order.ClientName == "" {
		return &ValidationError{Field: "client_name", Reason: "must not be empty"}
	}
	if order.CarModel == "" {
		return &ValidationError{Field: "car_model", Reason: "must not be empty"}
	}
	if order.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	return nil
}

func employeeExists(tx *gorm.DB, id uint) error {
	var employee models.Employee
	if err := tx.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "employee", ID: id}
		}
		return err
	}
	return nil
}

// CreateOrder persists a new OPEN order with no line items and a zero
// total. Status and total supplied by the caller are ignored.
func (s *OrderStore) CreateOrder(order *models.Order) error {
	if err := validateOrderFields(order); err != nil {
		return err
	}
	if err := employeeExists(s.db, order.EmployeeID); err != nil {
		return err
	}
	order.Status = models.OrderOpen
	order.TotalPrice = decimal.Zero
	return s.db.Create(order).Error
}

// GetOrder returns the order with the given id.
func (s *OrderStore) GetOrder(id uint) (*models.Order, error) {
	return loadOrder(s.db, id)
}

// ListOrders returns orders, optionally filtered by status, newest first.
func (s *OrderStore) ListOrders(status *models.OrderStatus) ([]models.Order, error) {
	query := s.db.Order("date DESC, order_id DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListLineItems returns the order's line items.
func (s *OrderStore) ListLineItems(orderID uint) ([]models.LineItem, error) {
	if _, err := loadOrder(s.db, orderID); err != nil {
		return nil, err
	}
	var items []models.LineItem
	err := s.db.Where("order_id = ?", orderID).Order("line_item_id").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateOrder edits an open order's client-facing fields. Status and total
// are not writable through this path.
func (s *OrderStore) UpdateOrder(id uint, upd *models.Order) (*models.Order, error) {
	if err := validateOrderFields(upd); err != nil {
		return nil, err
	}
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOpenOrder(tx, id); err != nil {
			return err
		}
		var err error
		if order, err = loadOrder(tx, id); err != nil {
			return err
		}
		if err = employeeExists(tx, upd.EmployeeID); err != nil {
			return err
		}
		order.ClientName = upd.ClientName
		order.CarModel = upd.CarModel
		order.CarNumber = upd.CarNumber
		order.Date = upd.Date
		order.EmployeeID = upd.EmployeeID
		return tx.Model(order).Updates(map[string]interface{}{
			"client_name": order.ClientName,
			"car_model":   order.CarModel,
			"car_number":  order.CarNumber,
			"date":        order.Date,
			"employee_id": order.EmployeeID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Complete transitions an open order to COMPLETED, freezing its total at
// the recomputed value. The status flip comes first: the guarded update
// takes the row lock, so a concurrent line-item mutation or cancel lose
// cleanly — whoever flips the row first wins, the other sees a StateError —
// and the total summed afterwards cannot drift before this transaction
// commits.
func (s *OrderStore) Complete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("order_id = ? AND status = ?", id, models.OrderOpen).
			UpdateColumn("status", models.OrderCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return stateOrNotFound(tx, id)
		}
		total, err := orderTotal(tx, id)
		if err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("order_id = ?", id).
			UpdateColumn("total_price", total).Error
	})
}

// Cancel transitions an open order to CANCELLED and releases every stock
// reservation held by its part-kind line items. Release is idempotent per
// token, so each reservation is credited back exactly once even across
// duplicate cancel attempts.
func (s *OrderStore) Cancel(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("order_id = ? AND status = ?", id, models.OrderOpen).
			UpdateColumn("status", models.OrderCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return stateOrNotFound(tx, id)
		}
		return s.releaseOrderStock(tx, id)
	})
}

// DeleteOrder removes an order together with its line items. An open
// order's reservations are released first so no stock is stranded.
func (s *OrderStore) DeleteOrder(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		order, err := loadOrder(tx, id)
		if err != nil {
			return err
		}
		if order.Status == models.OrderOpen {
			if err := s.releaseOrderStock(tx, id); err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (s *OrderStore) releaseOrderStock(tx *gorm.DB, orderID uint) error {
	var items []models.LineItem
	err := tx.Where("order_id = ? AND reservation_token IS NOT NULL", orderID).
		Find(&items).Error
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.ledger.Release(tx, *item.ReservationToken); err != nil {
			return err
		}
	}
	return nil
}
