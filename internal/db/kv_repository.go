package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KVRecord struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// KVRepository is a small durable key-value store used for per-patient view
// state such as the cart. Missing keys are reported through the found flag,
// never as an error.
type KVRepository struct {
	database *gorm.DB
}

func NewKVRepository(database *gorm.DB) *KVRepository {
	return &KVRepository{database: database}
}

func (repo *KVRepository) Get(key string) (string, bool, error) {
	var record KVRecord
	err := repo.database.First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Value, true, nil
}

func (repo *KVRepository) Set(key string, value string) error {
	record := KVRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func (repo *KVRepository) Remove(key string) error {
	return repo.database.Delete(&KVRecord{}, "key = ?", key).Error
}
