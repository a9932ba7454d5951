package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trangvt/claria/internal/models"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	FindByID(appointmentID string) (models.Appointment, error)
	ListByPatient(patientID string) ([]models.Appointment, error)
	UpdateStatus(appointmentID string, status string) error
}

type AppointmentService struct {
	appointments AppointmentRepository
}

type AppointmentRequest struct {
	FullName      string `json:"full_name" form:"full_name"`
	Phone         string `json:"phone" form:"phone"`
	Email         string `json:"email" form:"email"`
	DoctorName    string `json:"doctor_name" form:"doctor_name"`
	VisitType     string `json:"visit_type" form:"visit_type"`
	Schedule      string `json:"schedule" form:"schedule"`
	PreferredDate string `json:"preferred_date" form:"preferred_date"`
	PreferredTime string `json:"preferred_time" form:"preferred_time"`
	Message       string `json:"message" form:"message"`
}

type UpcomingAppointment struct {
	models.Appointment
	DaysUntil int    `json:"days_until"`
	TimeUntil string `json:"time_until"`
}

type RecentAppointment struct {
	models.Appointment
	DaysAgo int `json:"days_ago"`
}

func NewAppointmentService(appointments AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments}
}

// Create validates the booking request, aggregating every field problem, and
// stores the appointment in pending state.
func (service *AppointmentService) Create(patientID string, request AppointmentRequest, now time.Time) (models.Appointment, map[string]string, error) {
	fieldErrors := map[string]string{}

	fullName := strings.TrimSpace(request.FullName)
	if fullName == "" {
		fieldErrors["full_name"] = "full name is required"
	}

	phone, err := NormalizePhoneE164(request.Phone)
	if err != nil {
		fieldErrors["phone"] = err.Error()
	}

	visitType := strings.ToLower(strings.TrimSpace(request.VisitType))
	if visitType == "" {
		visitType = models.VisitTypeConsultation
	}
	if !models.ValidVisitType(visitType) {
		fieldErrors["visit_type"] = "invalid visit type"
	}

	var date time.Time
	if raw := strings.TrimSpace(request.PreferredDate); raw == "" {
		fieldErrors["preferred_date"] = "preferred date is required"
	} else {
		date, err = time.ParseInLocation("2006-01-02", raw, now.Location())
		switch {
		case err != nil:
			fieldErrors["preferred_date"] = "invalid date format"
		case date.Before(dateOnly(now)):
			fieldErrors["preferred_date"] = "date cannot be in the past"
		}
	}

	if len(fieldErrors) > 0 {
		return models.Appointment{}, fieldErrors, nil
	}

	appointment := models.Appointment{
		ID:         uuid.NewString(),
		PatientID:  patientID,
		FullName:   fullName,
		Phone:      phone,
		Email:      strings.TrimSpace(request.Email),
		DoctorName: strings.TrimSpace(request.DoctorName),
		VisitType:  visitType,
		Schedule:   MapScheduleSlot(request.Schedule),
		Date:       date,
		TimeSlot:   strings.TrimSpace(request.PreferredTime),
		Message:    strings.TrimSpace(request.Message),
		Status:     models.AppointmentPending,
		CreatedAt:  now,
	}
	if err := service.appointments.Create(&appointment); err != nil {
		return models.Appointment{}, nil, fmt.Errorf("create appointment: %w", err)
	}
	return appointment, nil, nil
}

func (service *AppointmentService) ListByPatient(patientID string) ([]models.Appointment, error) {
	return service.appointments.ListByPatient(patientID)
}

// Cancel moves a pending appointment of the given patient to cancelled.
func (service *AppointmentService) Cancel(patientID string, appointmentID string) error {
	appointment, err := service.appointments.FindByID(appointmentID)
	if err != nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return ErrAppointmentNotFound
	}
	if appointment.Status != models.AppointmentPending {
		return fmt.Errorf("appointment is already %s", appointment.Status)
	}
	return service.appointments.UpdateStatus(appointmentID, models.AppointmentCancelled)
}

// SplitByDate partitions appointments into upcoming (today or later, pending)
// and recent ones, each annotated with its day distance from today.
func SplitByDate(appointments []models.Appointment, now time.Time) ([]UpcomingAppointment, []RecentAppointment) {
	today := dateOnly(now)
	upcoming := make([]UpcomingAppointment, 0)
	recent := make([]RecentAppointment, 0)

	for _, appointment := range appointments {
		date := dateOnly(appointment.Date)
		if !date.Before(today) && appointment.Status == models.AppointmentPending {
			days := daysBetween(today, date)
			upcoming = append(upcoming, UpcomingAppointment{
				Appointment: appointment,
				DaysUntil:   days,
				TimeUntil:   describeTimeUntil(days),
			})
			continue
		}
		recent = append(recent, RecentAppointment{
			Appointment: appointment,
			DaysAgo:     daysBetween(date, today),
		})
	}
	return upcoming, recent
}

func describeTimeUntil(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// NormalizePhoneE164 converts Vietnamese phone numbers to E.164 (+84...).
func NormalizePhoneE164(phone string) (string, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if clean == "" {
		return "", errors.New("phone is required")
	}

	switch {
	case strings.HasPrefix(clean, "+84"):
		// already E.164
	case strings.HasPrefix(clean, "84"):
		clean = "+" + clean
	case strings.HasPrefix(clean, "0"):
		clean = "+84" + clean[1:]
	default:
		return "", errors.New("phone must be a Vietnamese number")
	}

	digits := clean[1:]
	if len(digits) < 10 || len(digits) > 12 {
		return "", errors.New("phone number has the wrong length")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", errors.New("phone may contain digits only")
		}
	}
	return clean, nil
}

// MapScheduleSlot normalizes a requested slot to Morning/Afternoon/Evening;
// anything unrecognized (including specific times) defaults to Morning.
func MapScheduleSlot(schedule string) string {
	switch strings.ToLower(strings.TrimSpace(schedule)) {
	case "afternoon":
		return models.ScheduleAfternoon
	case "evening":
		return models.ScheduleEvening
	default:
		return models.ScheduleMorning
	}
}
