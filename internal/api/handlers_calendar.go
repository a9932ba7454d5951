package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trangvt/claria/internal/services"
)

func (handler *Handler) CycleOverview(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.repositories.Periods.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period history")
	}

	response := fiber.Map{
		"total_entries":       len(entries),
		"symptom_frequencies": services.CalculateSymptomFrequencies(entries),
	}
	if stats, ok := services.ComputePeriodStats(entries, handler.now()); ok {
		response["stats"] = stats
	} else {
		response["stats"] = nil
	}
	return c.JSON(response)
}

func (handler *Handler) CalendarMonth(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today := handler.now()
	anchor := today
	if monthQuery := c.Query("month"); monthQuery != "" {
		parsed, err := time.ParseInLocation("2006-01", monthQuery, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "month must be in YYYY-MM format")
		}
		anchor = parsed
	}

	entries, err := handler.repositories.Periods.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period history")
	}

	var stats *services.PeriodStats
	if computed, ok := services.ComputePeriodStats(entries, today); ok {
		stats = &computed
	}
	days := services.BuildCalendarMonth(entries, stats, today, anchor)

	return c.JSON(fiber.Map{
		"month":          services.MonthLabel(anchor),
		"previous_month": services.PreviousMonth(anchor).Format("2006-01"),
		"next_month":     services.NextMonth(anchor).Format("2006-01"),
		"days":           days,
	})
}
