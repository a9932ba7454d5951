package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/trangvt/claria/internal/models"
)

var errUnauthenticated = errors.New("unauthenticated")

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	patient, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, patient)
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.Patient, error) {
	raw := c.Cookies(authCookieName)
	if raw == "" {
		return nil, errUnauthenticated
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid || claims.PatientID == "" {
		return nil, errUnauthenticated
	}

	patient, err := handler.auth.FindByID(claims.PatientID)
	if err != nil {
		return nil, errUnauthenticated
	}
	return &patient, nil
}

func currentPatient(c *fiber.Ctx) (*models.Patient, bool) {
	patient, ok := c.Locals(contextUserKey).(*models.Patient)
	return patient, ok
}
