package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// StockLedger performs atomic reservation and release of part stock.
// Reserve and Release run inside the caller's transaction so that a failed
// unit of work rolls the stock movement back together with everything else.
//
// The check-and-decrement is a single conditional UPDATE, so two concurrent
// reservations can never both pass the availability check. On top of that a
// keyed mutex serializes callers per part; unrelated parts never block each
// other.
type StockLedger struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewStockLedger creates an empty ledger.
func NewStockLedger() *StockLedger {
	return &StockLedger{locks: make(map[uint]*sync.Mutex)}
}

func (l *StockLedger) lockFor(partID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[partID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[partID] = lock
	}
	return lock
}

// Reserve atomically checks that the part has at least qty units on hand
// and decrements its stock, returning an opaque reservation token. Returns
// a StockError when stock is insufficient and a NotFoundError when the part
// does not exist.
func (l *StockLedger) Reserve(tx *gorm.DB, partID uint, qty int) (string, error) {
	if qty <= 0 {
		return "", &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	lock := l.lockFor(partID)
	lock.Lock()
	defer lock.Unlock()

	res := tx.Model(&models.Part{}).
		Where("part_id = ? AND quantity >= ?", partID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		part, err := getPart(tx, partID)
		if err != nil {
			return "", err
		}
		return "", &StockError{PartID: partID, Requested: qty, Available: part.Quantity}
	}

	reservation := models.StockReservation{
		Token:    uuid.NewString(),
		PartID:   partID,
		Quantity: qty,
		Status:   models.ReservationActive,
	}
	if err := tx.Create(&reservation).Error; err != nil {
		return "", err
	}
	return reservation.Token, nil
}

// Release credits a reservation's quantity back to its part. Releasing an
// already released or unknown token is a no-op, which makes retried and
// duplicate cancellations safe.
func (l *StockLedger) Release(tx *gorm.DB, token string) error {
	var reservation models.StockReservation
	err := tx.Where("token = ?", token).First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if reservation.Status == models.ReservationReleased {
		return nil
	}

	lock := l.lockFor(reservation.PartID)
	lock.Lock()
	defer lock.Unlock()

	// The status guard is the idempotency barrier: only the caller that
	// flips active -> released credits the stock back.
	now := time.Now()
	res := tx.Model(&models.StockReservation{}).
		Where("token = ? AND status = ?", token, models.ReservationActive).
		Updates(map[string]interface{}{
			"status":      models.ReservationReleased,
			"released_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	return tx.Model(&models.Part{}).
		Where("part_id = ?", reservation.PartID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", reservation.Quantity)).Error
}

// Availability reports whether qty units of the part are on hand right now.
// It does not reserve anything.
func (l *StockLedger) Availability(db *gorm.DB, partID uint, qty int) (bool, int, error) {
	if qty <= 0 {
		return false, 0, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	part, err := getPart(db, partID)
	if err != nil {
		return false, 0, err
	}
	return part.Quantity >= qty, part.Quantity, nil
}

// Reserved returns the total quantity currently held by active reservations
// for the part.
func (l *StockLedger) Reserved(db *gorm.DB, partID uint) (int, error) {
	var total int
	err := db.Model(&models.StockReservation{}).
		Where("part_id = ? AND status = ?", partID, models.ReservationActive).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
