package services

import (
	"strings"
	"time"

	"github.com/trangvt/claria/internal/models"
)

const maxPeriodDurationDays = 10
const maxDescriptionLength = 500

type PeriodForm struct {
	StartDate        string   `json:"start_date" form:"start_date"`
	EndDate          string   `json:"end_date" form:"end_date"`
	PeriodLengthDays int      `json:"period_length_days" form:"period_length_days"`
	FlowIntensity    string   `json:"flow_intensity" form:"flow_intensity"`
	Symptoms         []string `json:"symptoms" form:"symptoms"`
	Description      string   `json:"period_description" form:"period_description"`
}

type PeriodFormValidation struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// ValidatePeriodForm checks every field and aggregates all problems into the
// error map, so callers can surface them at once instead of failing fast.
func ValidatePeriodForm(form PeriodForm, today time.Time) PeriodFormValidation {
	errors := map[string]string{}
	today = dateOnly(today)

	var start time.Time
	switch {
	case strings.TrimSpace(form.StartDate) == "":
		errors["start_date"] = "start date is required"
	default:
		parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(form.StartDate), today.Location())
		switch {
		case err != nil:
			errors["start_date"] = "invalid start date format"
		case parsed.After(today):
			errors["start_date"] = "start date cannot be in the future"
		default:
			start = parsed
		}
	}

	if raw := strings.TrimSpace(form.EndDate); raw != "" {
		end, err := time.ParseInLocation("2006-01-02", raw, today.Location())
		switch {
		case err != nil:
			errors["end_date"] = "invalid end date format"
		case end.After(today):
			errors["end_date"] = "end date cannot be in the future"
		case !start.IsZero() && end.Before(start):
			errors["end_date"] = "end date must be on or after the start date"
		case !start.IsZero() && daysBetween(start, end) > maxPeriodDurationDays:
			errors["end_date"] = "period duration cannot exceed 10 days"
		}
	}

	if form.PeriodLengthDays < 0 || form.PeriodLengthDays > maxPeriodDurationDays {
		errors["period_length_days"] = "period length must be between 1 and 10 days"
	}

	if !models.ValidFlowIntensity(form.FlowIntensity) {
		errors["flow_intensity"] = "please select a valid flow intensity"
	}

	for _, tag := range form.Symptoms {
		if !models.ValidSymptom(tag) {
			errors["symptoms"] = "invalid symptoms selected"
			break
		}
	}

	if len(form.Description) > maxDescriptionLength {
		errors["period_description"] = "description cannot exceed 500 characters"
	}

	return PeriodFormValidation{IsValid: len(errors) == 0, Errors: errors}
}

// SanitizePeriodForm normalizes a submission before validation: trims dates
// and description, drops unknown symptom tags, defaults the flow to medium.
func SanitizePeriodForm(form PeriodForm) PeriodForm {
	sanitized := PeriodForm{
		StartDate:        strings.TrimSpace(form.StartDate),
		EndDate:          strings.TrimSpace(form.EndDate),
		PeriodLengthDays: form.PeriodLengthDays,
		FlowIntensity:    strings.ToLower(strings.TrimSpace(form.FlowIntensity)),
		Description:      strings.TrimSpace(form.Description),
	}
	if sanitized.FlowIntensity == "" || !models.ValidFlowIntensity(sanitized.FlowIntensity) {
		sanitized.FlowIntensity = models.FlowMedium
	}
	if len(sanitized.Description) > maxDescriptionLength {
		sanitized.Description = sanitized.Description[:maxDescriptionLength]
	}

	sanitized.Symptoms = make([]string, 0, len(form.Symptoms))
	seen := map[string]bool{}
	for _, tag := range form.Symptoms {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if models.ValidSymptom(tag) && !seen[tag] {
			sanitized.Symptoms = append(sanitized.Symptoms, tag)
			seen[tag] = true
		}
	}
	return sanitized
}
