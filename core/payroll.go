package core

import (
	"errors"

	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// PayrollStore is the CRUD collaborator for salary payments and expense
// records. These feed the FinancialAggregator but are never owned by
// orders.
type PayrollStore struct {
	db *gorm.DB
}

// NewPayrollStore creates a payroll store over the given database.
func NewPayrollStore(db *gorm.DB) *PayrollStore {
	return &PayrollStore{db: db}
}

func validateSalaryPayment(payment *models.SalaryPayment) error {
	if payment.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if payment.Bonus.IsNegative() {
		return &ValidationError{Field: "bonus", Reason: "must not be negative"}
	}
	if payment.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	return nil
}

func validateExpense(expense *models.Expense) error {
	if expense.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if expense.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if expense.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	for _, category := range models.ExpenseCategories() {
		if expense.Category == category {
			return nil
		}
	}
	return &ValidationError{Field: "category", Reason: "unknown category"}
}

// CreateSalaryPayment validates and persists a new salary payment.
func (s *PayrollStore) CreateSalaryPayment(payment *models.SalaryPayment) error {
	if err := validateSalaryPayment(payment); err != nil {
		return err
	}
	if err := employeeExists(s.db, payment.EmployeeID); err != nil {
		return err
	}
	return s.db.Create(payment).Error
}

// GetSalaryPayment returns the payment with the given id.
func (s *PayrollStore) GetSalaryPayment(id uint) (*models.SalaryPayment, error) {
	var payment models.SalaryPayment
	if err := s.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "salary payment", ID: id}
		}
		return nil, err
	}
	return &payment, nil
}

// ListSalaryPayments returns payments, optionally filtered by employee,
// newest first.
func (s *PayrollStore) ListSalaryPayments(employeeID *uint) ([]models.SalaryPayment, error) {
	query := s.db.Order("date DESC, payment_id DESC")
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}
	var payments []models.SalaryPayment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateSalaryPayment replaces a payment's fields.
func (s *PayrollStore) UpdateSalaryPayment(id uint, upd *models.SalaryPayment) (*models.SalaryPayment, error) {
	if err := validateSalaryPayment(upd); err != nil {
		return nil, err
	}
	payment, err := s.GetSalaryPayment(id)
	if err != nil {
		return nil, err
	}
	if err := employeeExists(s.db, upd.EmployeeID); err != nil {
		return nil, err
	}
	payment.EmployeeID = upd.EmployeeID
	payment.Amount = upd.Amount
	payment.Bonus = upd.Bonus
	payment.Date = upd.Date
	if err := s.db.Model(payment).Updates(map[string]interface{}{
		"employee_id": payment.EmployeeID,
		"amount":      payment.Amount,
		"bonus":       payment.Bonus,
		"date":        payment.Date,
	}).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// DeleteSalaryPayment removes a payment record.
func (s *PayrollStore) DeleteSalaryPayment(id uint) error {
	if _, err := s.GetSalaryPayment(id); err != nil {
		return err
	}
	return s.db.Delete(&models.SalaryPayment{}, id).Error
}

// CreateExpense validates and persists a new expense.
func (s *PayrollStore) CreateExpense(expense *models.Expense) error {
	if err := validateExpense(expense); err != nil {
		return err
	}
	return s.db.Create(expense).Error
}

// GetExpense returns the expense with the given id.
func (s *PayrollStore) GetExpense(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "expense", ID: id}
		}
		return nil, err
	}
	return &expense, nil
}

// ListExpenses returns expenses, optionally filtered by category, newest
// first.
func (s *PayrollStore) ListExpenses(category *models.ExpenseCategory) ([]models.Expense, error) {
	query := s.db.Order("date DESC, expense_id DESC")
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateExpense replaces an expense's fields.
func (s *PayrollStore) UpdateExpense(id uint, upd *models.Expense) (*models.Expense, error) {
	if err := validateExpense(upd); err != nil {
		return nil, err
	}
	expense, err := s.GetExpense(id)
	if err != nil {
		return nil, err
	}
	expense.Name = upd.Name
	expense.Amount = upd.Amount
	expense.Date = upd.Date
	expense.Category = upd.Category
	if err := s.db.Model(expense).Updates(map[string]interface{}{
		"name":     expense.Name,
		"amount":   expense.Amount,
		"date":     expense.Date,
		"category": expense.Category,
	}).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense record.
func (s *PayrollStore) DeleteExpense(id uint) error {
	if _, err := s.GetExpense(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Expense{}, id).Error
}
