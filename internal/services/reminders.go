package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/trangvt/claria/internal/models"
	"gorm.io/gorm"
)

// ReminderService sends optional Telegram reminders for predicted periods and
// upcoming appointments. It stays disabled unless both bot credentials are
// present in the environment.
type ReminderService struct {
	db                     *gorm.DB
	botToken               string
	chatID                 string
	enabled                bool
	periodReminderDays     int
	appointmentReminder    bool
	location               *time.Location
	client                 *http.Client
	mu                     sync.Mutex
	sentDailyNotifications map[string]time.Time
}

func NewReminderService(db *gorm.DB, location *time.Location) *ReminderService {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	periodReminderDays := 2
	if raw := os.Getenv("PERIOD_REMINDER_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			periodReminderDays = parsed
		}
	}

	appointmentReminder := true
	if raw := os.Getenv("APPOINTMENT_REMINDERS"); raw != "" {
		appointmentReminder = raw == "1" || raw == "true" || raw == "TRUE"
	}

	if location == nil {
		location = time.Local
	}

	return &ReminderService{
		db:                  db,
		botToken:            botToken,
		chatID:              chatID,
		enabled:             botToken != "" && chatID != "",
		periodReminderDays:  periodReminderDays,
		appointmentReminder: appointmentReminder,
		location:            location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		sentDailyNotifications: make(map[string]time.Time),
	}
}

func (service *ReminderService) Start(ctx context.Context) {
	if !service.enabled {
		return
	}

	ticker := time.NewTicker(6 * time.Hour)
	go func() {
		defer ticker.Stop()

		service.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run(ctx)
			}
		}
	}()
}

func (service *ReminderService) run(ctx context.Context) {
	now := time.Now().In(service.location)
	today := DateAtLocation(now, service.location)

	service.runPeriodReminders(ctx, now, today)
	if service.appointmentReminder {
		service.runAppointmentReminders(ctx, today)
	}
}

func (service *ReminderService) runPeriodReminders(ctx context.Context, now time.Time, today time.Time) {
	patients := make([]models.Patient, 0)
	if err := service.db.WithContext(ctx).
		Where("patient_status = ?", models.PatientStatusActive).
		Find(&patients).Error; err != nil {
		log.Printf("reminders: fetch patients failed: %v", err)
		return
	}

	for _, patient := range patients {
		history := make([]models.PeriodEntry, 0)
		from := today.AddDate(0, 0, -420)

		if err := service.db.WithContext(ctx).
			Where("patient_id = ? AND start_date >= ?", patient.ID, from).
			Order("start_date ASC").
			Find(&history).Error; err != nil {
			log.Printf("reminders: fetch period entries failed for patient %s: %v", patient.ID, err)
			continue
		}

		stats, ok := ComputePeriodStats(history, now)
		if !ok {
			continue
		}

		if daysBetween(today, stats.NextPeriodDate) == service.periodReminderDays {
			key := fmt.Sprintf("period:%s:%s", patient.ID, today.Format("2006-01-02"))
			if service.shouldSend(key, today) {
				message := fmt.Sprintf("Claria reminder: your predicted period starts in %d day(s) on %s.",
					service.periodReminderDays,
					stats.NextPeriodDate.Format("Jan 2"),
				)
				if err := service.sendTelegram(ctx, message); err != nil {
					log.Printf("reminders: send period reminder failed: %v", err)
				}
			}
		}
	}
}

func (service *ReminderService) runAppointmentReminders(ctx context.Context, today time.Time) {
	tomorrow := today.AddDate(0, 0, 1)
	appointments := make([]models.Appointment, 0)
	if err := service.db.WithContext(ctx).
		Where("status = ? AND date >= ? AND date < ?", models.AppointmentPending, tomorrow, tomorrow.AddDate(0, 0, 1)).
		Find(&appointments).Error; err != nil {
		log.Printf("reminders: fetch appointments failed: %v", err)
		return
	}

	for _, appointment := range appointments {
		key := fmt.Sprintf("appointment:%s:%s", appointment.ID, today.Format("2006-01-02"))
		if !service.shouldSend(key, today) {
			continue
		}
		message := fmt.Sprintf("Claria reminder: %s has an appointment tomorrow (%s, %s).",
			appointment.FullName,
			appointment.Date.Format("Jan 2"),
			appointment.Schedule,
		)
		if err := service.sendTelegram(ctx, message); err != nil {
			log.Printf("reminders: send appointment reminder failed: %v", err)
		}
	}
}

func (service *ReminderService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sentDailyNotifications[key]; ok && sameDay(sentOn, today) {
		return false
	}

	service.sentDailyNotifications[key] = today
	if len(service.sentDailyNotifications) > 500 {
		service.sentDailyNotifications = make(map[string]time.Time)
	}
	return true
}

func (service *ReminderService) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", service.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", service.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
