package core

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// FinancialAggregator builds read-only rollups over committed orders,
// payroll and expense records. It never mutates anything; every report runs
// inside a single read transaction so the numbers come from one consistent
// snapshot.
type FinancialAggregator struct {
	db *gorm.DB
}

// NewFinancialAggregator creates an aggregator over the given database.
func NewFinancialAggregator(db *gorm.DB) *FinancialAggregator {
	return &FinancialAggregator{db: db}
}

// FinancialStats is the income/expense/profit rollup for a date range.
type FinancialStats struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Salaries decimal.Decimal `json:"salaries"`
	Profit   decimal.Decimal `json:"profit"`
}

// EmployeeStats summarizes the current employee roster.
type EmployeeStats struct {
	EmployeeCount int64           `json:"employee_count"`
	AverageSalary decimal.Decimal `json:"average_salary"`
}

// OrdersReportRow is one line of the orders report, with the responsible
// employee's name joined in.
type OrdersReportRow struct {
	OrderID      uint               `json:"id"`
	ClientName   string             `json:"client_name"`
	CarModel     string             `json:"car_model"`
	Date         time.Time          `json:"date"`
	Status       models.OrderStatus `json:"status"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	EmployeeName string             `json:"employee_name"`
}

func dateRange(query *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where(column+" >= ?", *start)
	}
	if end != nil {
		query = query.Where(column+" <= ?", *end)
	}
	return query
}

// FinancialStats computes income (completed orders in range), expenses
// (expense records plus salary payments with bonuses), salaries and profit.
// Omitted bounds are unbounded; both bounds are inclusive. Empty ranges
// yield zeros, never an error.
func (a *FinancialAggregator) FinancialStats(start, end *time.Time) (*FinancialStats, error) {
	stats := &FinancialStats{}
	err := a.db.Transaction(func(tx *gorm.DB) error {
		income := tx.Model(&models.Order{}).
			Where("status = ?", models.OrderCompleted).
			Select("COALESCE(SUM(total_price), 0)")
		if err := dateRange(income, "date", start, end).Scan(&stats.Income).Error; err != nil {
			return err
		}

		var expenseSum decimal.Decimal
		expenses := tx.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)")
		if err := dateRange(expenses, "date", start, end).Scan(&expenseSum).Error; err != nil {
			return err
		}

		salaries := tx.Model(&models.SalaryPayment{}).
			Select("COALESCE(SUM(amount + bonus), 0)")
		if err := dateRange(salaries, "date", start, end).Scan(&stats.Salaries).Error; err != nil {
			return err
		}

		stats.Expenses = expenseSum.Add(stats.Salaries)
		stats.Profit = stats.Income.Sub(stats.Expenses)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// EmployeeStats returns the headcount and average salary over all current
// employee records.
func (a *FinancialAggregator) EmployeeStats() (*EmployeeStats, error) {
	stats := &EmployeeStats{}
	err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).Count(&stats.EmployeeCount).Error; err != nil {
			return err
		}
		return tx.Model(&models.Employee{}).
			Select("COALESCE(AVG(salary), 0)").
			Scan(&stats.AverageSalary).Error
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// PartsReport lists parts with at least minQuantity units on hand.
func (a *FinancialAggregator) PartsReport(minQuantity int) ([]models.Part, error) {
	if minQuantity < 0 {
		return nil, &ValidationError{Field: "min_quantity", Reason: "must not be negative"}
	}
	var parts []models.Part
	err := a.db.Where("quantity >= ?", minQuantity).
		Order("quantity ASC, name").
		Find(&parts).Error
	if err != nil {
		return nil, err
	}
	return parts, nil
}

// OrdersReport lists orders with employee names, optionally filtered by
// status and date range, newest first.
func (a *FinancialAggregator) OrdersReport(status *models.OrderStatus, start, end *time.Time) ([]OrdersReportRow, error) {
	query := a.db.Model(&models.Order{}).
		Select("orders.order_id, orders.client_name, orders.car_model, orders.date, orders.status, orders.total_price, employees.name AS employee_name").
		Joins("JOIN employees ON orders.employee_id = employees.employee_id").
		Order("orders.date DESC, orders.order_id DESC")
	if status != nil {
		query = query.Where("orders.status = ?", *status)
	}
	query = dateRange(query, "orders.date", start, end)

	var rows []OrdersReportRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
