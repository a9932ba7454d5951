package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trangvt/claria/internal/db"
	"github.com/trangvt/claria/internal/services"
	"gorm.io/gorm"
)

const testHashSecret = "test-hash-secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "claria-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	gateway := services.NewPaymentGateway(
		"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		"TEST01",
		testHashSecret,
		"http://localhost:8080/api/payments/return",
	)
	handler := NewHandler(database, "test-secret-key", time.UTC, gateway)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any, authCookie string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

// registerTestPatient creates an account through the public API and returns
// the session cookie for follow-up requests.
func registerTestPatient(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"full_name":        "Nguyen Thi Mai",
		"email":            email,
		"password":         "password123",
		"confirm_password": "password123",
		"phone":            "0912345678",
		"gender":           "female",
	}, "")
	expectStatus(t, response, http.StatusCreated)
	response.Body.Close()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("register response did not set the auth cookie")
	return ""
}
