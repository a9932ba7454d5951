package api

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/trangvt/claria/internal/services"
)

// ExportPeriods streams the patient's period history as a CSV or JSON
// download, selected by the format query parameter.
func (handler *Handler) ExportPeriods(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.repositories.Periods.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period history")
	}

	switch strings.ToLower(c.Query("format", "csv")) {
	case "json":
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="period-history.json"`)
		return c.JSON(fiber.Map{"entries": entries})
	case "csv":
		var buffer bytes.Buffer
		writer := csv.NewWriter(&buffer)

		_ = writer.Write([]string{"start_date", "end_date", "duration_days", "flow_intensity", "symptoms", "description"})
		for _, entry := range entries {
			endDate := ""
			if entry.EndDate != nil {
				endDate = entry.EndDate.Format("2006-01-02")
			}
			_ = writer.Write([]string{
				entry.StartDate.Format("2006-01-02"),
				endDate,
				strconv.Itoa(services.PeriodDuration(entry)),
				entry.FlowIntensity,
				strings.Join(entry.Symptoms, ";"),
				entry.Description,
			})
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="period-history.csv"`)
		return c.Send(buffer.Bytes())
	default:
		return apiError(c, fiber.StatusBadRequest, "format must be csv or json")
	}
}
