package db

import (
	"github.com/trangvt/claria/internal/models"
	"gorm.io/gorm"
)

type PatientRepository struct {
	database *gorm.DB
}

func NewPatientRepository(database *gorm.DB) *PatientRepository {
	return &PatientRepository{database: database}
}

func (repo *PatientRepository) FindByID(patientID string) (models.Patient, error) {
	var patient models.Patient
	if err := repo.database.First(&patient, "id = ?", patientID).Error; err != nil {
		return models.Patient{}, err
	}
	return patient, nil
}

func (repo *PatientRepository) FindByNormalizedEmail(email string) (models.Patient, error) {
	var patient models.Patient
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&patient).Error; err != nil {
		return models.Patient{}, err
	}
	return patient, nil
}

func (repo *PatientRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Patient{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *PatientRepository) Create(patient *models.Patient) error {
	return repo.database.Create(patient).Error
}

func (repo *PatientRepository) Save(patient *models.Patient) error {
	return repo.database.Save(patient).Error
}

func (repo *PatientRepository) UpdateProfile(patientID string, updates map[string]any) error {
	return repo.database.Model(&models.Patient{}).Where("id = ?", patientID).Updates(updates).Error
}
