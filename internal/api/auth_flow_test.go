package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)

	cookie := registerTestPatient(t, app, "mai@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/auth/me", nil, cookie)
	expectStatus(t, response, http.StatusOK)
	var me map[string]any
	decodeBody(t, response, &me)
	if me["email"] != "mai@example.com" {
		t.Fatalf("unexpected session identity %v", me["email"])
	}
	if me["full_name"] != "Nguyen Thi Mai" {
		t.Fatalf("unexpected full name %v", me["full_name"])
	}

	// A fresh login issues a new session cookie.
	response = doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "mai@example.com",
		"password": "password123",
	}, "")
	expectStatus(t, response, http.StatusOK)
	response.Body.Close()
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestPatient(t, app, "mai@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"full_name":        "Another Mai",
		"email":            "MAI@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	}, "")
	expectStatus(t, response, http.StatusConflict)
	response.Body.Close()
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":            "not-an-email",
		"password":         "short",
		"confirm_password": "different",
	}, "")
	expectStatus(t, response, http.StatusUnprocessableEntity)

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, response, &payload)
	for _, field := range []string{"full_name", "email", "password", "confirm_password"} {
		if payload.Errors[field] == "" {
			t.Fatalf("expected an error for %s, got %v", field, payload.Errors)
		}
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestPatient(t, app, "mai@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "mai@example.com",
		"password": "wrong-password",
	}, "")
	expectStatus(t, response, http.StatusUnauthorized)
	response.Body.Close()
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/dashboard", "/api/periods", "/api/cart", "/api/cycle/calendar"} {
		response := doJSON(t, app, http.MethodGet, path, nil, "")
		expectStatus(t, response, http.StatusUnauthorized)
		response.Body.Close()
	}

	response := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, authCookieName+"=not-a-jwt")
	expectStatus(t, response, http.StatusUnauthorized)
	response.Body.Close()
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestPatient(t, app, "mai@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil, cookie)
	expectStatus(t, response, http.StatusOK)

	cleared := false
	for _, c := range response.Cookies() {
		if c.Name == authCookieName && c.Value == "" {
			cleared = true
		}
	}
	response.Body.Close()
	if !cleared {
		t.Fatal("logout must clear the auth cookie")
	}
}
