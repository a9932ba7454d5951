package services

import (
	"time"

	"github.com/trangvt/claria/internal/models"
)

type DashboardView struct {
	Patient              DashboardPatient      `json:"patient"`
	NextAppointment      *UpcomingAppointment  `json:"next_appointment,omitempty"`
	UpcomingAppointments []UpcomingAppointment `json:"upcoming_appointments"`
	RecentAppointments   []RecentAppointment   `json:"recent_appointments"`
	PeriodStats          *PeriodStats          `json:"period_stats,omitempty"`
}

type DashboardPatient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Age       int    `json:"age,omitempty"`
	Status    string `json:"status"`
	ImageLink string `json:"image_link,omitempty"`
}

// BuildDashboard assembles the patient dashboard view model. It is a plain
// projection recomputed on every request.
func BuildDashboard(patient models.Patient, appointments []models.Appointment, history []models.PeriodEntry, now time.Time) DashboardView {
	upcoming, recent := SplitByDate(appointments, now)

	view := DashboardView{
		Patient: DashboardPatient{
			ID:        patient.ID,
			Name:      patient.FullName,
			Email:     patient.Email,
			Phone:     patient.Phone,
			Gender:    patient.Gender,
			Age:       AgeAt(patient.DateOfBirth, now),
			Status:    patient.PatientStatus,
			ImageLink: patient.ImageLink,
		},
		UpcomingAppointments: upcoming,
		RecentAppointments:   recent,
	}

	if len(upcoming) > 0 {
		next := upcoming[0]
		for _, candidate := range upcoming[1:] {
			if candidate.Date.Before(next.Date) {
				next = candidate
			}
		}
		view.NextAppointment = &next
	}

	if stats, ok := ComputePeriodStats(history, now); ok {
		view.PeriodStats = &stats
	}
	return view
}

func AgeAt(dateOfBirth *time.Time, now time.Time) int {
	if dateOfBirth == nil {
		return 0
	}
	age := now.Year() - dateOfBirth.Year()
	anniversary := time.Date(now.Year(), dateOfBirth.Month(), dateOfBirth.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly(now).Before(anniversary) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
