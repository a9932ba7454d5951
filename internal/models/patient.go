package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	PatientStatusActive   = "active"
	PatientStatusInactive = "inactive"
)

type Patient struct {
	ID            string `gorm:"primaryKey"`
	FullName      string `gorm:"not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	Phone         string
	Gender        string `gorm:"not null;default:other"`
	DateOfBirth   *time.Time
	PatientStatus string `gorm:"not null;default:active"`
	ImageLink     string
	Bio           string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}
