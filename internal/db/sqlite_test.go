package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/trangvt/claria/internal/models"
)

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %s: %v", raw, err)
	}
	return parsed
}

func openTestDB(t *testing.T) *Repositories {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "claria-db-test.db"))
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
	return NewRepositories(database)
}

func TestOpenSQLiteSeedsServiceCatalog(t *testing.T) {
	repos := openTestDB(t)

	services, err := repos.Services.List()
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(services) == 0 {
		t.Fatal("expected the seeded catalog")
	}
	for _, service := range services {
		if service.ID == "" || service.Name == "" || service.Price <= 0 {
			t.Fatalf("incomplete seeded service %+v", service)
		}
	}
}

func TestKVRepositoryRoundTrip(t *testing.T) {
	repos := openTestDB(t)

	if _, found, err := repos.KV.Get("missing"); err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	if err := repos.KV.Set("cart:p1", `{"items":[]}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, found, err := repos.KV.Get("cart:p1")
	if err != nil || !found || value != `{"items":[]}` {
		t.Fatalf("get after set: value=%q found=%v err=%v", value, found, err)
	}

	// Upsert overwrites in place.
	if err := repos.KV.Set("cart:p1", `{"items":[{"service_id":"a"}]}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = repos.KV.Get("cart:p1")
	if value == `{"items":[]}` {
		t.Fatal("expected the overwritten value")
	}

	if err := repos.KV.Remove("cart:p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, found, _ := repos.KV.Get("cart:p1"); found {
		t.Fatal("expected the key gone after remove")
	}
}

func TestPeriodRepositoryScoping(t *testing.T) {
	repos := openTestDB(t)

	entry := models.PeriodEntry{
		ID:            "e1",
		PatientID:     "p1",
		StartDate:     mustDay(t, "2024-06-01"),
		FlowIntensity: models.FlowMedium,
		Symptoms:      []string{"cramps"},
	}
	if err := repos.Periods.Create(&entry); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := repos.Periods.ListByPatient("p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].Symptoms[0] != "cramps" {
		t.Fatalf("expected the stored entry with symptoms, got %+v", mine)
	}

	others, _ := repos.Periods.ListByPatient("p2")
	if len(others) != 0 {
		t.Fatalf("expected no entries for another patient, got %d", len(others))
	}

	deleted, err := repos.Periods.DeleteByIDAndPatient("e1", "p2")
	if err != nil || deleted {
		t.Fatalf("cross-patient delete must be a no-op: deleted=%v err=%v", deleted, err)
	}
	deleted, err = repos.Periods.DeleteByIDAndPatient("e1", "p1")
	if err != nil || !deleted {
		t.Fatalf("owner delete failed: deleted=%v err=%v", deleted, err)
	}
}
