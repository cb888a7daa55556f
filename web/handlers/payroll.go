package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

type salaryPaymentRequest struct {
	EmployeeID uint            `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Bonus      decimal.Decimal `json:"bonus"`
	Date       string          `json:"date"`
}

func (r *salaryPaymentRequest) toModel() (*models.SalaryPayment, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &models.SalaryPayment{
		EmployeeID: r.EmployeeID,
		Amount:     r.Amount,
		Bonus:      r.Bonus,
		Date:       date,
	}, nil
}

type expenseRequest struct {
	Name     string                 `json:"name"`
	Amount   decimal.Decimal        `json:"amount"`
	Date     string                 `json:"date"`
	Category models.ExpenseCategory `json:"category"`
}

func (r *expenseRequest) toModel() (*models.Expense, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		Name:     r.Name,
		Amount:   r.Amount,
		Date:     date,
		Category: r.Category,
	}, nil
}

// SalaryPaymentList returns salary payments, optionally filtered by
// employee_id
func SalaryPaymentList(c *fiber.Ctx) error {
	var employeeID *uint
	if value := c.QueryInt("employee_id", 0); value > 0 {
		id := uint(value)
		employeeID = &id
	}
	payments, err := payroll.ListSalaryPayments(employeeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payments)
}

// SalaryPaymentCreate records a salary payment
func SalaryPaymentCreate(c *fiber.Ctx) error {
	var req salaryPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payment, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	if err := payroll.CreateSalaryPayment(payment); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// SalaryPaymentView returns a single salary payment
func SalaryPaymentView(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	payment, err := payroll.GetSalaryPayment(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payment)
}

// SalaryPaymentUpdate updates a salary payment
func SalaryPaymentUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req salaryPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	payment, err := payroll.UpdateSalaryPayment(id, upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payment)
}

// SalaryPaymentDelete deletes a salary payment
func SalaryPaymentDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := payroll.DeleteSalaryPayment(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "salary payment deleted"})
}

// ExpenseList returns expenses, optionally filtered by category
func ExpenseList(c *fiber.Ctx) error {
	var category *models.ExpenseCategory
	if value := c.Query("category"); value != "" {
		cat := models.ExpenseCategory(value)
		category = &cat
	}
	expenses, err := payroll.ListExpenses(category)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(expenses)
}

// ExpenseCreate records an expense
func ExpenseCreate(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	expense, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	if err := payroll.CreateExpense(expense); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// ExpenseView returns a single expense
func ExpenseView(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	expense, err := payroll.GetExpense(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(expense)
}

// ExpenseUpdate updates an expense
func ExpenseUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	expense, err := payroll.UpdateExpense(id, upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(expense)
}

// ExpenseDelete deletes an expense
func ExpenseDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := payroll.DeleteExpense(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "expense deleted"})
}
