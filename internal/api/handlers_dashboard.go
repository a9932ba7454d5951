package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trangvt/claria/internal/services"
)

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	appointments, err := handler.repositories.Appointments.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load appointments")
	}
	history, err := handler.repositories.Periods.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period history")
	}

	return c.JSON(services.BuildDashboard(*patient, appointments, history, handler.now()))
}
