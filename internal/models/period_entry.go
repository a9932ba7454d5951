package models

import "time"

const (
	FlowLight     = "light"
	FlowMedium    = "medium"
	FlowHeavy     = "heavy"
	FlowVeryHeavy = "very_heavy"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type PeriodEntry struct {
	ID               string    `gorm:"primaryKey" json:"period_id"`
	PatientID        string    `gorm:"not null;index" json:"patient_id"`
	StartDate        time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate          *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	PeriodLengthDays *int      `json:"period_length_days,omitempty"`
	FlowIntensity    string    `gorm:"not null;default:medium" json:"flow_intensity"`
	Symptoms         []string  `gorm:"serializer:json" json:"symptoms"`
	Description      string    `json:"period_description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ValidFlowIntensity(flow string) bool {
	switch flow {
	case FlowLight, FlowMedium, FlowHeavy, FlowVeryHeavy:
		return true
	default:
		return false
	}
}

// PeriodSymptoms is the documented symptom vocabulary; entries may carry any
// subset of these tags.
func PeriodSymptoms() []string {
	return []string{
		"cramps",
		"headache",
		"mood_swings",
		"bloating",
		"breast_tenderness",
		"fatigue",
		"nausea",
		"back_pain",
		"acne",
		"food_cravings",
		"insomnia",
		"diarrhea",
		"constipation",
		"hot_flashes",
		"dizziness",
	}
}

func ValidSymptom(tag string) bool {
	for _, known := range PeriodSymptoms() {
		if known == tag {
			return true
		}
	}
	return false
}
