package models

import "time"

const (
	VisitTypeConsultation = "consultation"
	VisitTypeVirtual      = "virtual"
	VisitTypeInternal     = "internal"
	VisitTypeExternal     = "external"
)

const (
	ScheduleMorning   = "Morning"
	ScheduleAfternoon = "Afternoon"
	ScheduleEvening   = "Evening"
)

const (
	AppointmentPending   = "pending"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID         string    `gorm:"primaryKey" json:"appointment_id"`
	PatientID  string    `gorm:"not null;index" json:"patient_id"`
	FullName   string    `gorm:"not null" json:"full_name"`
	Phone      string    `gorm:"not null" json:"phone"`
	Email      string    `json:"email,omitempty"`
	DoctorName string    `json:"doctor_name,omitempty"`
	VisitType  string    `gorm:"not null;default:consultation" json:"visit_type"`
	Schedule   string    `gorm:"not null" json:"schedule"`
	Date       time.Time `gorm:"type:date;not null" json:"appointment_date"`
	TimeSlot   string    `json:"appointment_time,omitempty"`
	Message    string    `json:"message,omitempty"`
	Status     string    `gorm:"not null;default:pending;index" json:"appointment_status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func ValidVisitType(visitType string) bool {
	switch visitType {
	case VisitTypeConsultation, VisitTypeVirtual, VisitTypeInternal, VisitTypeExternal:
		return true
	default:
		return false
	}
}
