package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trangvt/claria/internal/models"
	"github.com/trangvt/claria/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.repositories.Periods.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period history")
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	form := services.PeriodForm{}
	if err := c.BodyParser(&form); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	form = services.SanitizePeriodForm(form)
	validation := services.ValidatePeriodForm(form, handler.now())
	if !validation.IsValid {
		return validationError(c, validation.Errors)
	}

	entry, err := handler.entryFromForm(form)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	entry.ID = uuid.NewString()
	entry.PatientID = patient.ID
	entry.CreatedAt = handler.now()

	if err := handler.repositories.Periods.Create(&entry); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to log period")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"message":        "period data logged successfully",
		"period_id":      entry.ID,
		"period_details": entry,
	})
}

func (handler *Handler) UpdatePeriod(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	existing, err := handler.repositories.Periods.FindByID(c.Params("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && existing.PatientID != patient.ID) {
		return apiError(c, fiber.StatusNotFound, "period entry not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period entry")
	}

	form := services.PeriodForm{}
	if err := c.BodyParser(&form); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	form = services.SanitizePeriodForm(form)
	validation := services.ValidatePeriodForm(form, handler.now())
	if !validation.IsValid {
		return validationError(c, validation.Errors)
	}

	updated, err := handler.entryFromForm(form)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	updated.ID = existing.ID
	updated.PatientID = existing.PatientID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = handler.now()

	if err := handler.repositories.Periods.Save(&updated); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update period entry")
	}
	return c.JSON(fiber.Map{
		"success":        true,
		"message":        "period entry updated successfully",
		"period_id":      updated.ID,
		"period_details": updated,
	})
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	deleted, err := handler.repositories.Periods.DeleteByIDAndPatient(c.Params("id"), patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete period entry")
	}
	if !deleted {
		return apiError(c, fiber.StatusNotFound, "period entry not found")
	}
	return c.JSON(fiber.Map{"success": true, "message": "period entry deleted successfully"})
}

func (handler *Handler) entryFromForm(form services.PeriodForm) (models.PeriodEntry, error) {
	start, err := time.ParseInLocation("2006-01-02", form.StartDate, handler.location)
	if err != nil {
		return models.PeriodEntry{}, err
	}

	entry := models.PeriodEntry{
		StartDate:     start,
		FlowIntensity: form.FlowIntensity,
		Symptoms:      form.Symptoms,
		Description:   form.Description,
	}
	if form.EndDate != "" {
		end, err := time.ParseInLocation("2006-01-02", form.EndDate, handler.location)
		if err != nil {
			return models.PeriodEntry{}, err
		}
		entry.EndDate = &end
	}
	if form.PeriodLengthDays > 0 {
		length := form.PeriodLengthDays
		entry.PeriodLengthDays = &length
	}
	return entry, nil
}
