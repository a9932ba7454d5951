package db

import (
	"github.com/trangvt/claria/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) ListByPatient(patientID string) ([]models.PeriodEntry, error) {
	entries := make([]models.PeriodEntry, 0)
	if err := repo.database.
		Where("patient_id = ?", patientID).
		Order("start_date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *PeriodRepository) FindByID(entryID string) (models.PeriodEntry, error) {
	var entry models.PeriodEntry
	if err := repo.database.First(&entry, "id = ?", entryID).Error; err != nil {
		return models.PeriodEntry{}, err
	}
	return entry, nil
}

func (repo *PeriodRepository) Create(entry *models.PeriodEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *PeriodRepository) Save(entry *models.PeriodEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *PeriodRepository) DeleteByIDAndPatient(entryID string, patientID string) (bool, error) {
	result := repo.database.Where("id = ? AND patient_id = ?", entryID, patientID).Delete(&models.PeriodEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
