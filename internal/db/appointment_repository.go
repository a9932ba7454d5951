package db

import (
	"github.com/trangvt/claria/internal/models"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	database *gorm.DB
}

func NewAppointmentRepository(database *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{database: database}
}

func (repo *AppointmentRepository) Create(appointment *models.Appointment) error {
	return repo.database.Create(appointment).Error
}

func (repo *AppointmentRepository) FindByID(appointmentID string) (models.Appointment, error) {
	var appointment models.Appointment
	if err := repo.database.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return models.Appointment{}, err
	}
	return appointment, nil
}

func (repo *AppointmentRepository) ListByPatient(patientID string) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	if err := repo.database.
		Where("patient_id = ?", patientID).
		Order("date DESC, created_at DESC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (repo *AppointmentRepository) UpdateStatus(appointmentID string, status string) error {
	return repo.database.Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("status", status).Error
}
