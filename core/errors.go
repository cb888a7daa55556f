package core

import (
	"fmt"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// ValidationError reports a malformed, missing or out-of-range input field.
// It is always returned before any mutation has happened.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a reference to an unknown record.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StateError reports a mutation attempted against an order that is not
// open. It aborts the enclosing unit of work.
type StateError struct {
	OrderID uint
	Status  models.OrderStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("order %d is %s and can no longer be modified", e.OrderID, e.Status)
}

// StockError reports a reservation that failed because the part does not
// have enough stock on hand.
type StockError struct {
	PartID    uint
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for part %d: requested %d, available %d",
		e.PartID, e.Requested, e.Available)
}

// ConflictError reports an operation that lost a concurrent race and would
// need a retry to succeed.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}
