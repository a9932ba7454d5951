package db

import (
	"github.com/trangvt/claria/internal/models"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	database *gorm.DB
}

func NewServiceRepository(database *gorm.DB) *ServiceRepository {
	return &ServiceRepository{database: database}
}

func (repo *ServiceRepository) List() ([]models.MedicalService, error) {
	services := make([]models.MedicalService, 0)
	if err := repo.database.Order("category ASC, name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (repo *ServiceRepository) ListByCategory(category string) ([]models.MedicalService, error) {
	services := make([]models.MedicalService, 0)
	if err := repo.database.
		Where("category = ?", category).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (repo *ServiceRepository) FindByID(serviceID string) (models.MedicalService, error) {
	var service models.MedicalService
	if err := repo.database.First(&service, "id = ?", serviceID).Error; err != nil {
		return models.MedicalService{}, err
	}
	return service, nil
}
