package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trangvt/claria/internal/services"
)

func (handler *Handler) BookAppointment(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	request := services.AppointmentRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	appointment, fieldErrors, err := handler.appointments.Create(patient.ID, request, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to book appointment")
	}
	if len(fieldErrors) > 0 {
		return validationError(c, fieldErrors)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "appointment booked successfully",
		"appointment": appointment,
	})
}

func (handler *Handler) ListAppointments(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	appointments, err := handler.appointments.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load appointments")
	}

	upcoming, recent := services.SplitByDate(appointments, handler.now())
	return c.JSON(fiber.Map{
		"upcoming": upcoming,
		"recent":   recent,
	})
}

func (handler *Handler) CancelAppointment(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	err := handler.appointments.Cancel(patient.ID, c.Params("id"))
	if errors.Is(err, services.ErrAppointmentNotFound) {
		return apiError(c, fiber.StatusNotFound, "appointment not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "appointment cancelled"})
}
