package core

import (
	"errors"

	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// EmployeeStore is the CRUD collaborator for employee records. Orders and
// salary payments reference employees by id but never own them.
type EmployeeStore struct {
	db *gorm.DB
}

// NewEmployeeStore creates an employee store over the given database.
func NewEmployeeStore(db *gorm.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

func validateEmployee(employee *models.Employee) error {
	if employee.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if employee.Position == "" {
		return &ValidationError{Field: "position", Reason: "must not be empty"}
	}
	if employee.Salary.IsNegative() {
		return &ValidationError{Field: "salary", Reason: "must not be negative"}
	}
	if employee.HireDate.IsZero() {
		return &ValidationError{Field: "hire_date", Reason: "must be set"}
	}
	return nil
}

// Create validates and persists a new employee.
func (s *EmployeeStore) Create(employee *models.Employee) error {
	if err := validateEmployee(employee); err != nil {
		return err
	}
	return s.db.Create(employee).Error
}

// Get returns the employee with the given id.
func (s *EmployeeStore) Get(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "employee", ID: id}
		}
		return nil, err
	}
	return &employee, nil
}

// List returns all employees ordered by name.
func (s *EmployeeStore) List() ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.Order("name").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Update replaces an employee's fields.
func (s *EmployeeStore) Update(id uint, upd *models.Employee) (*models.Employee, error) {
	if err := validateEmployee(upd); err != nil {
		return nil, err
	}
	employee, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	employee.Name = upd.Name
	employee.Position = upd.Position
	employee.Salary = upd.Salary
	employee.HireDate = upd.HireDate
	employee.Phone = upd.Phone
	employee.Email = upd.Email
	if err := s.db.Model(employee).Updates(map[string]interface{}{
		"name":      employee.Name,
		"position":  employee.Position,
		"salary":    employee.Salary,
		"hire_date": employee.HireDate,
		"phone":     employee.Phone,
		"email":     employee.Email,
	}).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// Delete removes an employee record.
func (s *EmployeeStore) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Employee{}, id).Error
}
