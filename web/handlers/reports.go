package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// FinancialReport returns income, expenses, salaries and profit for an
// optional inclusive date range
func FinancialReport(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return writeError(c, err)
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return writeError(c, err)
	}
	stats, err := finance.FinancialStats(start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// PartsReport lists parts with at least min_quantity units on hand
func PartsReport(c *fiber.Ctx) error {
	minQuantity := c.QueryInt("min_quantity", 5)
	parts, err := finance.PartsReport(minQuantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(parts)
}

// OrdersReport lists orders with employee names, filtered by optional
// status and date range
func OrdersReport(c *fiber.Ctx) error {
	status, err := parseStatusQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return writeError(c, err)
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return writeError(c, err)
	}
	rows, err := finance.OrdersReport(status, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}
