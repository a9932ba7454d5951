package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trangvt/claria/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthPatientRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.Patient, error)
	FindByID(patientID string) (models.Patient, error)
	Create(patient *models.Patient) error
	Save(patient *models.Patient) error
}

type AuthService struct {
	patients AuthPatientRepository
}

func NewAuthService(patients AuthPatientRepository) *AuthService {
	return &AuthService{patients: patients}
}

type RegistrationInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Gender   string
}

func (service *AuthService) Register(input RegistrationInput, now time.Time) (models.Patient, error) {
	email := NormalizeEmail(input.Email)

	exists, err := service.patients.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.Patient{}, err
	}
	if exists {
		return models.Patient{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Patient{}, err
	}

	gender := strings.ToLower(strings.TrimSpace(input.Gender))
	if gender != models.GenderMale && gender != models.GenderFemale {
		gender = models.GenderOther
	}

	patient := models.Patient{
		ID:            uuid.NewString(),
		FullName:      strings.TrimSpace(input.FullName),
		Email:         email,
		PasswordHash:  string(passwordHash),
		Phone:         strings.TrimSpace(input.Phone),
		Gender:        gender,
		PatientStatus: models.PatientStatusActive,
		CreatedAt:     now,
	}
	if err := service.patients.Create(&patient); err != nil {
		return models.Patient{}, err
	}
	return patient, nil
}

func (service *AuthService) Authenticate(email string, password string) (models.Patient, error) {
	patient, err := service.patients.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return models.Patient{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(password)) != nil {
		return models.Patient{}, ErrInvalidCredentials
	}
	if patient.PatientStatus != models.PatientStatusActive {
		return models.Patient{}, ErrInvalidCredentials
	}
	return patient, nil
}

func (service *AuthService) FindByID(patientID string) (models.Patient, error) {
	return service.patients.FindByID(patientID)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
