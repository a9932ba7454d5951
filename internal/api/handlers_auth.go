package api

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/trangvt/claria/internal/models"
	"github.com/trangvt/claria/internal/services"
)

type registerInput struct {
	FullName        string `json:"full_name" form:"full_name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	Phone           string `json:"phone" form:"phone"`
	Gender          string `json:"gender" form:"gender"`
}

type loginInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(input.FullName) == "" {
		fieldErrors["full_name"] = "full name is required"
	}
	email := services.NormalizeEmail(input.Email)
	if email == "" {
		fieldErrors["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fieldErrors["email"] = "invalid email"
	}
	if len(strings.TrimSpace(input.Password)) < 8 {
		fieldErrors["password"] = "password must be at least 8 characters"
	}
	if input.Password != input.ConfirmPassword {
		fieldErrors["confirm_password"] = "passwords do not match"
	}
	if len(fieldErrors) > 0 {
		return validationError(c, fieldErrors)
	}

	patient, err := handler.auth.Register(services.RegistrationInput{
		FullName: input.FullName,
		Email:    email,
		Password: strings.TrimSpace(input.Password),
		Phone:    input.Phone,
		Gender:   input.Gender,
	}, handler.now())
	if errors.Is(err, services.ErrEmailTaken) {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, &patient, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start session")
	}
	return c.Status(fiber.StatusCreated).JSON(patientView(&patient))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	patient, err := handler.auth.Authenticate(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	if err := handler.setAuthCookie(c, &patient, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start session")
	}
	return c.JSON(patientView(&patient))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(patientView(patient))
}

func patientView(patient *models.Patient) fiber.Map {
	return fiber.Map{
		"id":         patient.ID,
		"full_name":  patient.FullName,
		"email":      patient.Email,
		"phone":      patient.Phone,
		"gender":     patient.Gender,
		"status":     patient.PatientStatus,
		"image_link": patient.ImageLink,
		"created_at": patient.CreatedAt,
	}
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, patient *models.Patient, rememberMe bool) error {
	tokenTTL := defaultAuthTokenTTL
	if rememberMe {
		tokenTTL = rememberAuthTokenTTL
	}

	now := time.Now()
	claims := authClaims{
		PatientID: patient.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   patient.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	}
	if rememberMe {
		cookie.Expires = now.Add(tokenTTL)
	}
	c.Cookie(cookie)
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
