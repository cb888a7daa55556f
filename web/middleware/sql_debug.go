package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheMistaKrips/autobatya-fullstack/database"
)

// SQLDebug records how many SQL queries each request executed and stores
// the delta in the request locals for the debug endpoint.
func SQLDebug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		before := len(database.SQLLogger.GetQueries())

		err := c.Next()

		after := database.SQLLogger.GetQueries()
		var requestQueries []database.QueryLog
		if diff := len(after) - before; diff > 0 && diff <= len(after) {
			requestQueries = after[:diff]
		}

		c.Locals("SQLQueries", requestQueries)
		c.Locals("TotalSQLQueries", len(requestQueries))

		return err
	}
}
