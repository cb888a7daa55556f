package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheMistaKrips/autobatya-fullstack/database"
)

// GetSQLLogs returns the recently executed SQL queries
func GetSQLLogs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"queries": database.SQLLogger.GetQueries(),
	})
}

// ClearSQLLogs clears the SQL query log
func ClearSQLLogs(c *fiber.Ctx) error {
	database.SQLLogger.Clear()
	return c.JSON(fiber.Map{"message": "query log cleared"})
}
