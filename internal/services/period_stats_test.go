package services

import (
	"testing"
	"time"

	"github.com/trangvt/claria/internal/models"
)

func TestComputePeriodStatsEmptyHistory(t *testing.T) {
	_, ok := ComputePeriodStats(nil, mustParseDay("2024-06-10"))
	if ok {
		t.Fatal("expected no stats for empty history")
	}
}

func TestComputePeriodStatsProjection(t *testing.T) {
	history := []models.PeriodEntry{
		makeEntry("2024-06-01"),
		makeEntry("2024-05-04"),
		makeEntry("2024-04-07"),
	}

	stats, ok := ComputePeriodStats(history, mustParseDay("2024-06-10"))
	if !ok {
		t.Fatal("expected stats")
	}

	if stats.AverageCycleLength != 28 {
		t.Fatalf("expected average cycle length 28, got %d", stats.AverageCycleLength)
	}
	if stats.CurrentCycleDay != 10 {
		t.Fatalf("expected current cycle day 10, got %d", stats.CurrentCycleDay)
	}
	assertDay(t, "next period", stats.NextPeriodDate, "2024-06-29")
	assertDay(t, "ovulation", stats.OvulationDate, "2024-06-14")
	assertDay(t, "fertile window start", stats.FertileWindowStart, "2024-06-10")
	assertDay(t, "fertile window end", stats.FertileWindowEnd, "2024-06-17")
	assertDay(t, "optimal window start", stats.ConceptionTiming.OptimalWindowStart, "2024-06-12")
	assertDay(t, "optimal window end", stats.ConceptionTiming.OptimalWindowEnd, "2024-06-14")
	if stats.DaysUntilNextPeriod != 19 {
		t.Fatalf("expected 19 days until next period, got %d", stats.DaysUntilNextPeriod)
	}
	if stats.PeriodStatus.IsLate {
		t.Fatal("period should not be late")
	}
	if stats.TotalCyclesTracked != 3 {
		t.Fatalf("expected 3 tracked cycles, got %d", stats.TotalCyclesTracked)
	}
}

func TestComputePeriodStatsUnsortedInput(t *testing.T) {
	ordered := []models.PeriodEntry{
		makeEntry("2024-06-01"),
		makeEntry("2024-05-04"),
		makeEntry("2024-04-07"),
	}
	shuffled := []models.PeriodEntry{ordered[1], ordered[2], ordered[0]}

	today := mustParseDay("2024-06-10")
	first, _ := ComputePeriodStats(ordered, today)
	second, _ := ComputePeriodStats(shuffled, today)

	if first != second {
		t.Fatalf("stats differ for reordered history:\n%+v\n%+v", first, second)
	}
}

func TestAverageCycleLengthIgnoresOutliers(t *testing.T) {
	// The same-day duplicate (gap 0) and the 60-day gap are both outside
	// (0, 45] and must not pollute the average.
	history := []models.PeriodEntry{
		makeEntry("2024-03-29"),
		makeEntry("2024-03-01"),
		makeEntry("2024-01-01"),
		makeEntry("2024-01-01"),
	}

	stats, _ := ComputePeriodStats(history, mustParseDay("2024-04-01"))
	if stats.AverageCycleLength != 28 {
		t.Fatalf("expected average cycle length 28, got %d", stats.AverageCycleLength)
	}
}

func TestComputePeriodStatsDefaults(t *testing.T) {
	history := []models.PeriodEntry{makeEntry("2024-06-01")}

	stats, _ := ComputePeriodStats(history, mustParseDay("2024-06-05"))
	if stats.AverageCycleLength != models.DefaultCycleLength {
		t.Fatalf("expected default cycle length, got %d", stats.AverageCycleLength)
	}
	if stats.AveragePeriodLength != models.DefaultPeriodLength {
		t.Fatalf("expected default period length, got %d", stats.AveragePeriodLength)
	}
	assertDay(t, "next period", stats.NextPeriodDate, "2024-06-29")
}

func TestAveragePeriodLengthFromEndDates(t *testing.T) {
	history := []models.PeriodEntry{
		makeEntryWithEnd("2024-06-01", "2024-06-05"), // 5 days
		makeEntryWithEnd("2024-05-04", "2024-05-07"), // 4 days
		makeEntry("2024-04-07"),                      // no end date, skipped
	}

	stats, _ := ComputePeriodStats(history, mustParseDay("2024-06-10"))
	if stats.AveragePeriodLength != 5 {
		t.Fatalf("expected average period length 5 (4.5 rounded), got %d", stats.AveragePeriodLength)
	}
}

func TestPeriodStatusLate(t *testing.T) {
	history := []models.PeriodEntry{makeEntry("2024-05-01")}

	stats, _ := ComputePeriodStats(history, mustParseDay("2024-06-03"))
	if !stats.PeriodStatus.IsLate {
		t.Fatal("expected late status")
	}
	if stats.PeriodStatus.DaysLate != 5 {
		t.Fatalf("expected 5 days late, got %d", stats.PeriodStatus.DaysLate)
	}
	assertDay(t, "expected date", stats.PeriodStatus.ExpectedDate, "2024-05-29")
	if stats.DaysUntilNextPeriod != 0 {
		t.Fatalf("expected 0 days until next period when overdue, got %d", stats.DaysUntilNextPeriod)
	}
}

func TestPeriodStatusNotLateWhenPeriodArrived(t *testing.T) {
	history := []models.PeriodEntry{
		makeEntry("2024-05-30"),
		makeEntry("2024-05-01"),
	}

	stats, _ := ComputePeriodStats(history, mustParseDay("2024-06-03"))
	if stats.PeriodStatus.IsLate {
		t.Fatal("a newly logged period must clear the late status")
	}
}

func TestFertileWindowAlwaysBeforeNextPeriod(t *testing.T) {
	// Entries every 10 days would average below the fertile window span;
	// the floor keeps the projected dates ordered.
	history := []models.PeriodEntry{
		makeEntry("2024-06-01"),
		makeEntry("2024-05-22"),
		makeEntry("2024-05-12"),
		makeEntry("2024-05-02"),
	}

	stats, _ := ComputePeriodStats(history, mustParseDay("2024-06-05"))
	if !stats.FertileWindowStart.Before(stats.OvulationDate) {
		t.Fatal("fertile window start must precede ovulation")
	}
	if !stats.OvulationDate.Before(stats.FertileWindowEnd) {
		t.Fatal("ovulation must precede fertile window end")
	}
	if !stats.FertileWindowEnd.Before(stats.NextPeriodDate) {
		t.Fatalf("fertile window end %s must precede next period %s",
			stats.FertileWindowEnd.Format("2006-01-02"), stats.NextPeriodDate.Format("2006-01-02"))
	}
}

func TestCurrentCycleDayNeverBelowOne(t *testing.T) {
	// Future-dated entry, e.g. logged ahead by mistake.
	history := []models.PeriodEntry{makeEntry("2024-06-20")}

	stats, _ := ComputePeriodStats(history, mustParseDay("2024-06-10"))
	if stats.CurrentCycleDay != 1 {
		t.Fatalf("expected current cycle day 1, got %d", stats.CurrentCycleDay)
	}
}

func TestPeriodDuration(t *testing.T) {
	override := 3
	withOverride := makeEntryWithEnd("2024-06-01", "2024-06-05")
	withOverride.PeriodLengthDays = &override

	if got := PeriodDuration(withOverride); got != 3 {
		t.Fatalf("expected override duration 3, got %d", got)
	}
	if got := PeriodDuration(makeEntryWithEnd("2024-06-01", "2024-06-05")); got != 5 {
		t.Fatalf("expected end-date duration 5, got %d", got)
	}
	if got := PeriodDuration(makeEntry("2024-06-01")); got != 0 {
		t.Fatalf("expected 0 (ongoing) without end date, got %d", got)
	}
}

func makeEntry(start string) models.PeriodEntry {
	return models.PeriodEntry{
		StartDate:     mustParseDay(start),
		FlowIntensity: models.FlowMedium,
	}
}

func makeEntryWithEnd(start string, end string) models.PeriodEntry {
	entry := makeEntry(start)
	endDate := mustParseDay(end)
	entry.EndDate = &endDate
	return entry
}

func assertDay(t *testing.T, label string, got time.Time, want string) {
	t.Helper()
	if got.Format("2006-01-02") != want {
		t.Fatalf("unexpected %s: want %s, got %s", label, want, got.Format("2006-01-02"))
	}
}

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}
