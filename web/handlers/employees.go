package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

type employeeRequest struct {
	Name     string          `json:"name"`
	Position string          `json:"position"`
	Salary   decimal.Decimal `json:"salary"`
	HireDate string          `json:"hire_date"`
	Phone    string          `json:"phone"`
	Email    *string         `json:"email"`
}

func (r *employeeRequest) toModel() (*models.Employee, error) {
	hireDate, err := parseDate(r.HireDate)
	if err != nil {
		return nil, err
	}
	return &models.Employee{
		Name:     r.Name,
		Position: r.Position,
		Salary:   r.Salary,
		HireDate: hireDate,
		Phone:    r.Phone,
		Email:    r.Email,
	}, nil
}

// EmployeeList returns all employees
func EmployeeList(c *fiber.Ctx) error {
	list, err := employees.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// EmployeeCreate creates a new employee
func EmployeeCreate(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	employee, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	if err := employees.Create(employee); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// EmployeeView returns a single employee
func EmployeeView(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	employee, err := employees.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(employee)
}

// EmployeeUpdate updates an employee
func EmployeeUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	employee, err := employees.Update(id, upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(employee)
}

// EmployeeDelete deletes an employee
func EmployeeDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := employees.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "employee deleted"})
}

// EmployeeStats returns headcount and average salary
func EmployeeStats(c *fiber.Ctx) error {
	stats, err := finance.EmployeeStats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
