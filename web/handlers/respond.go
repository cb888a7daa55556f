package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/core"
)

var (
	catalog   *core.CatalogStore
	ledger    *core.StockLedger
	orders    *core.OrderStore
	engine    *core.PricingEngine
	finance   *core.FinancialAggregator
	employees *core.EmployeeStore
	payroll   *core.PayrollStore
)

// Setup wires the handler package to its core services. Must be called
// once before any route is served; the ledger in particular has to be a
// singleton so its per-part locks are shared by all requests.
func Setup(db *gorm.DB) {
	catalog = core.NewCatalogStore(db)
	ledger = core.NewStockLedger()
	orders = core.NewOrderStore(db, ledger)
	engine = core.NewPricingEngine(db, catalog, ledger)
	finance = core.NewFinancialAggregator(db)
	employees = core.NewEmployeeStore(db)
	payroll = core.NewPayrollStore(db)
}

// writeError maps core error kinds onto HTTP status codes, keeping the
// kind visible to the client through the message.
func writeError(c *fiber.Ctx, err error) error {
	var (
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		stateErr      *core.StateError
		stockErr      *core.StockError
		conflictErr   *core.ConflictError
	)

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = fiber.StatusNotFound
	case errors.As(err, &stateErr), errors.As(err, &stockErr), errors.As(err, &conflictErr):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &core.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return t, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, &core.ValidationError{Field: name, Reason: "must be YYYY-MM-DD"}
	}
	return &t, nil
}
