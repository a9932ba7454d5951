package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trangvt/claria/internal/models"
)

func (handler *Handler) ListServices(c *fiber.Ctx) error {
	category := c.Query("category")

	var err error
	catalog := []models.MedicalService{}
	if category != "" {
		catalog, err = handler.repositories.Services.ListByCategory(category)
	} else {
		catalog, err = handler.repositories.Services.List()
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load service catalog")
	}
	return c.JSON(fiber.Map{"services": catalog})
}
