package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee represents employees table
type Employee struct {
	EmployeeID uint            `gorm:"primaryKey;column:employee_id" json:"id"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Position   string          `gorm:"type:varchar(100);not null" json:"position"`
	Salary     decimal.Decimal `gorm:"type:decimal(12,2);not null;check:salary >= 0" json:"salary"`
	HireDate   time.Time       `gorm:"type:date;not null" json:"hire_date"`
	Phone      string          `gorm:"type:varchar(20)" json:"phone"`
	Email      *string         `gorm:"type:varchar(100)" json:"email,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
