package db

import (
	"time"

	"github.com/trangvt/claria/internal/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	database *gorm.DB
}

func NewOrderRepository(database *gorm.DB) *OrderRepository {
	return &OrderRepository{database: database}
}

func (repo *OrderRepository) Create(order *models.Order) error {
	return repo.database.Create(order).Error
}

func (repo *OrderRepository) FindByTxnRef(txnRef string) (models.Order, error) {
	var order models.Order
	if err := repo.database.First(&order, "txn_ref = ?", txnRef).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (repo *OrderRepository) ListByPatient(patientID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := repo.database.
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (repo *OrderRepository) MarkOutcome(txnRef string, status string, responseCode string, bankCode string, transactionNo string, paidAt *time.Time) error {
	return repo.database.Model(&models.Order{}).Where("txn_ref = ?", txnRef).Updates(map[string]any{
		"status":         status,
		"response_code":  responseCode,
		"bank_code":      bankCode,
		"transaction_no": transactionNo,
		"paid_at":        paidAt,
	}).Error
}
