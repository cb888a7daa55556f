package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory type for expense categories
type ExpenseCategory string

const (
	ExpenseSalaries ExpenseCategory = "salaries"
	ExpenseParts    ExpenseCategory = "parts"
	ExpenseRent     ExpenseCategory = "rent"
	ExpenseOther    ExpenseCategory = "other"
)

// ExpenseCategories lists all valid categories.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{ExpenseSalaries, ExpenseParts, ExpenseRent, ExpenseOther}
}

// SalaryPayment represents salary_payments table
type SalaryPayment struct {
	PaymentID  uint            `gorm:"primaryKey;column:payment_id" json:"id"`
	EmployeeID uint            `gorm:"not null;index" json:"employee_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null;check:amount >= 0" json:"amount"`
	Bonus      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"bonus"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relationships
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// TableName specifies the table name for SalaryPayment
func (SalaryPayment) TableName() string {
	return "salary_payments"
}

// Expense represents expenses table
type Expense struct {
	ExpenseID uint            `gorm:"primaryKey;column:expense_id" json:"id"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null;check:amount >= 0" json:"amount"`
	Date      time.Time       `gorm:"type:date;not null" json:"date"`
	Category  ExpenseCategory `gorm:"type:varchar(20);not null" json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}
