package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestAppointmentBookingFlow(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestPatient(t, app, "mai@example.com")

	preferred := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	response := doJSON(t, app, http.MethodPost, "/api/appointments", fiber.Map{
		"full_name":      "Nguyen Thi Mai",
		"phone":          "0912345678",
		"visit_type":     "consultation",
		"schedule":       "evening",
		"preferred_date": preferred,
	}, cookie)
	expectStatus(t, response, http.StatusCreated)

	var created struct {
		Appointment struct {
			ID       string `json:"appointment_id"`
			Phone    string `json:"phone"`
			Schedule string `json:"schedule"`
			Status   string `json:"appointment_status"`
		} `json:"appointment"`
	}
	decodeBody(t, response, &created)
	if created.Appointment.Phone != "+84912345678" {
		t.Fatalf("expected E.164 phone, got %s", created.Appointment.Phone)
	}
	if created.Appointment.Schedule != "Evening" {
		t.Fatalf("expected Evening slot, got %s", created.Appointment.Schedule)
	}
	if created.Appointment.Status != "pending" {
		t.Fatalf("expected pending status, got %s", created.Appointment.Status)
	}

	response = doJSON(t, app, http.MethodGet, "/api/appointments", nil, cookie)
	expectStatus(t, response, http.StatusOK)
	var listing struct {
		Upcoming []map[string]any `json:"upcoming"`
		Recent   []map[string]any `json:"recent"`
	}
	decodeBody(t, response, &listing)
	if len(listing.Upcoming) != 1 {
		t.Fatalf("expected one upcoming appointment, got %d", len(listing.Upcoming))
	}

	response = doJSON(t, app, http.MethodPost, "/api/appointments/"+created.Appointment.ID+"/cancel", nil, cookie)
	expectStatus(t, response, http.StatusOK)
	response.Body.Close()

	// Cancelling twice conflicts: the appointment is no longer pending.
	response = doJSON(t, app, http.MethodPost, "/api/appointments/"+created.Appointment.ID+"/cancel", nil, cookie)
	expectStatus(t, response, http.StatusConflict)
	response.Body.Close()
}

func TestAppointmentBookingValidation(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestPatient(t, app, "mai@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/appointments", fiber.Map{
		"phone":          "12345",
		"preferred_date": "2020-01-01",
	}, cookie)
	expectStatus(t, response, http.StatusUnprocessableEntity)

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, response, &payload)
	for _, field := range []string{"full_name", "phone", "preferred_date"} {
		if payload.Errors[field] == "" {
			t.Fatalf("expected an error for %s, got %v", field, payload.Errors)
		}
	}
}

func TestDashboardEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestPatient(t, app, "mai@example.com")

	start := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	response := doJSON(t, app, http.MethodPost, "/api/periods", fiber.Map{
		"start_date":     start,
		"flow_intensity": "medium",
	}, cookie)
	expectStatus(t, response, http.StatusCreated)
	response.Body.Close()

	response = doJSON(t, app, http.MethodGet, "/api/dashboard", nil, cookie)
	expectStatus(t, response, http.StatusOK)

	var view struct {
		Patient struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"patient"`
		PeriodStats map[string]any `json:"period_stats"`
	}
	decodeBody(t, response, &view)
	if view.Patient.Email != "mai@example.com" {
		t.Fatalf("unexpected dashboard identity %s", view.Patient.Email)
	}
	if view.PeriodStats == nil {
		t.Fatal("expected period stats on the dashboard")
	}
}
