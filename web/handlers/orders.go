package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheMistaKrips/autobatya-fullstack/core"
	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

type orderRequest struct {
	ClientName string `json:"client_name"`
	CarModel   string `json:"car_model"`
	CarNumber  string `json:"car_number"`
	Date       string `json:"date"`
	EmployeeID uint   `json:"employee_id"`
}

func (r *orderRequest) toModel() (*models.Order, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &models.Order{
		ClientName: r.ClientName,
		CarModel:   r.CarModel,
		CarNumber:  r.CarNumber,
		Date:       date,
		EmployeeID: r.EmployeeID,
	}, nil
}

func parseStatusQuery(c *fiber.Ctx) (*models.OrderStatus, error) {
	value := c.Query("status")
	if value == "" {
		return nil, nil
	}
	status := models.OrderStatus(value)
	switch status {
	case models.OrderOpen, models.OrderCompleted, models.OrderCancelled:
		return &status, nil
	default:
		return nil, &core.ValidationError{Field: "status", Reason: "unknown status"}
	}
}

// OrderList returns orders, optionally filtered by status
func OrderList(c *fiber.Ctx) error {
	status, err := parseStatusQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := orders.ListOrders(status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// OrderCreate creates a new open order with no line items
func OrderCreate(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	order, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	if err := orders.CreateOrder(order); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// OrderView returns a single order
func OrderView(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	order, err := orders.GetOrder(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// OrderUpdate updates an open order's client-facing fields
func OrderUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	order, err := orders.UpdateOrder(id, upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// OrderDelete deletes an order and its line items, releasing any stock
// still reserved
func OrderDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := orders.DeleteOrder(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "order deleted"})
}

// OrderComplete transitions an open order to COMPLETED
func OrderComplete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := orders.Complete(id); err != nil {
		return writeError(c, err)
	}
	order, err := orders.GetOrder(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// OrderCancel transitions an open order to CANCELLED, releasing its stock
func OrderCancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := orders.Cancel(id); err != nil {
		return writeError(c, err)
	}
	order, err := orders.GetOrder(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// OrderTotal forces a recalculation of the order total and returns it
func OrderTotal(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	total, err := engine.RecalcOrderTotal(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"order_id": id, "total_price": total})
}

// OrderItems returns the order's line items
func OrderItems(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := orders.ListLineItems(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}
