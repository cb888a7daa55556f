package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheMistaKrips/autobatya-fullstack/core"
)

type lineItemRequest struct {
	OrderID   uint  `json:"order_id"`
	PartID    *uint `json:"part_id"`
	ServiceID *uint `json:"service_id"`
	Quantity  int   `json:"quantity"`
}

// LineItemCreate adds a priced line item to an open order. The kind is
// derived from which of part_id/service_id is set; setting both or neither
// is rejected.
func LineItemCreate(c *fiber.Ctx) error {
	var req lineItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	kind, refID, err := core.KindFromRefs(req.PartID, req.ServiceID)
	if err != nil {
		return writeError(c, err)
	}
	item, err := engine.AddLineItem(req.OrderID, kind, refID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// LineItemView returns a single line item
func LineItemView(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := engine.GetLineItem(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// LineItemUpdateQuantity changes a line item's quantity, swapping its
// stock reservation when the item is part-kind
func LineItemUpdateQuantity(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	item, err := engine.UpdateLineItemQuantity(id, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// LineItemDelete removes a line item from an open order
func LineItemDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := engine.RemoveLineItem(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "line item deleted"})
}
