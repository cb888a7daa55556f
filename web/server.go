package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/TheMistaKrips/autobatya-fullstack/database"
	"github.com/TheMistaKrips/autobatya-fullstack/web/handlers"
	"github.com/TheMistaKrips/autobatya-fullstack/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server serving the JSON API
func NewServer() *Server {
	app := fiber.New(fiber.Config{
		AppName: "AutoBatya API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}

			log.Error().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Err(err).
				Msg("request failed")

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))
	app.Use(middleware.SQLDebug())

	handlers.Setup(database.GetDB())
	setupRoutes(app)

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	log.Info().Str("port", port).Msg("server starting")
	return s.app.Listen(":" + port)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Debug endpoint for SQL logs
	api.Get("/debug/sql", handlers.GetSQLLogs)
	api.Delete("/debug/sql", handlers.ClearSQLLogs)

	// Employee management (specific routes before ":id")
	employees := api.Group("/employees")
	employees.Get("/stats", handlers.EmployeeStats)
	employees.Get("/", handlers.EmployeeList)
	employees.Post("/", handlers.EmployeeCreate)
	employees.Get("/:id", handlers.EmployeeView)
	employees.Put("/:id", handlers.EmployeeUpdate)
	employees.Delete("/:id", handlers.EmployeeDelete)

	// Parts catalog and stock
	parts := api.Group("/parts")
	parts.Get("/", handlers.PartList)
	parts.Post("/", handlers.PartCreate)
	parts.Get("/:id", handlers.PartView)
	parts.Put("/:id", handlers.PartUpdate)
	parts.Delete("/:id", handlers.PartDelete)
	parts.Get("/:id/check", handlers.PartCheckAvailability)
	parts.Post("/:id/restock", handlers.PartRestock)

	// Services catalog
	services := api.Group("/services")
	services.Get("/", handlers.ServiceList)
	services.Post("/", handlers.ServiceCreate)
	services.Get("/:id", handlers.ServiceView)
	services.Put("/:id", handlers.ServiceUpdate)
	services.Delete("/:id", handlers.ServiceDelete)

	// Orders and their line items
	orders := api.Group("/orders")
	orders.Get("/", handlers.OrderList)
	orders.Post("/", handlers.OrderCreate)
	orders.Get("/:id", handlers.OrderView)
	orders.Put("/:id", handlers.OrderUpdate)
	orders.Delete("/:id", handlers.OrderDelete)
	orders.Post("/:id/complete", handlers.OrderComplete)
	orders.Post("/:id/cancel", handlers.OrderCancel)
	orders.Get("/:id/total", handlers.OrderTotal)
	orders.Get("/:id/items", handlers.OrderItems)

	// Line items ("order details")
	items := api.Group("/order-items")
	items.Post("/", handlers.LineItemCreate)
	items.Get("/:id", handlers.LineItemView)
	items.Put("/:id", handlers.LineItemUpdateQuantity)
	items.Delete("/:id", handlers.LineItemDelete)

	// Payroll
	payments := api.Group("/salary-payments")
	payments.Get("/", handlers.SalaryPaymentList)
	payments.Post("/", handlers.SalaryPaymentCreate)
	payments.Get("/:id", handlers.SalaryPaymentView)
	payments.Put("/:id", handlers.SalaryPaymentUpdate)
	payments.Delete("/:id", handlers.SalaryPaymentDelete)

	expenses := api.Group("/expenses")
	expenses.Get("/", handlers.ExpenseList)
	expenses.Post("/", handlers.ExpenseCreate)
	expenses.Get("/:id", handlers.ExpenseView)
	expenses.Put("/:id", handlers.ExpenseUpdate)
	expenses.Delete("/:id", handlers.ExpenseDelete)

	// Reports
	reports := api.Group("/reports")
	reports.Get("/financial", handlers.FinancialReport)
	reports.Get("/parts", handlers.PartsReport)
	reports.Get("/orders", handlers.OrdersReport)
}
