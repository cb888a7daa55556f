package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// PartList returns all parts
func PartList(c *fiber.Ctx) error {
	parts, err := catalog.ListParts()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(parts)
}

// PartCreate creates a new part
func PartCreate(c *fiber.Ctx) error {
	var part models.Part
	if err := c.BodyParser(&part); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	part.PartID = 0
	if err := catalog.CreatePart(&part); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(part)
}

// PartView returns a single part
func PartView(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	part, err := catalog.GetPart(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(part)
}

// PartUpdate updates a part's name, price and supplier
func PartUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var upd models.Part
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	part, err := catalog.UpdatePart(id, &upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(part)
}

// PartDelete deletes a part
func PartDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := catalog.DeletePart(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "part deleted"})
}

// PartCheckAvailability reports whether the requested quantity is on hand
func PartCheckAvailability(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	quantity := c.QueryInt("quantity", 1)
	available, onHand, err := engine.CheckPartAvailability(id, quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"available": available,
		"quantity":  onHand,
	})
}

// PartRestock adds stock to a part
func PartRestock(c *fiber.Ctx) error {
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
	part, err := catalog.Restock(id, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(part)
}
