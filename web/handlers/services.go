package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// ServiceList returns all services
func ServiceList(c *fiber.Ctx) error {
	services, err := catalog.ListServices()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(services)
}

// ServiceCreate creates a new service
func ServiceCreate(c *fiber.Ctx) error {
	var service models.Service
	if err := c.BodyParser(&service); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	service.ServiceID = 0
	if err := catalog.CreateService(&service); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// ServiceView returns a single service
func ServiceView(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	service, err := catalog.GetService(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(service)
}

// ServiceUpdate updates a service
func ServiceUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var upd models.Service
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	service, err := catalog.UpdateService(id, &upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(service)
}

// ServiceDelete deletes a service
func ServiceDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := catalog.DeleteService(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "service deleted"})
}
