package services

import (
	"sort"
	"time"

	"github.com/trangvt/claria/internal/models"
)

// Cycle-length samples outside (0, maxCycleSampleDays] are treated as
// duplicate or garbage entries and excluded from the average.
const maxCycleSampleDays = 45

// minAverageCycleLength keeps the predicted next period strictly after the
// fertile window (day 10-17), so the window/ovulation/next-period ordering
// holds for any history.
const minAverageCycleLength = 17

type PeriodStatus struct {
	IsLate       bool      `json:"is_late"`
	ExpectedDate time.Time `json:"expected_date"`
	DaysLate     int       `json:"days_late"`
}

type ConceptionTiming struct {
	OptimalWindowStart time.Time `json:"optimal_window_start"`
	OptimalWindowEnd   time.Time `json:"optimal_window_end"`
}

type PeriodStats struct {
	AverageCycleLength  int              `json:"average_cycle_length"`
	AveragePeriodLength int              `json:"average_period_length"`
	CurrentCycleDay     int              `json:"current_cycle_day"`
	TotalCyclesTracked  int              `json:"total_cycles_tracked"`
	DaysUntilNextPeriod int              `json:"days_until_next_period"`
	NextPeriodDate      time.Time        `json:"next_period_date"`
	FertileWindowStart  time.Time        `json:"fertile_window_start"`
	FertileWindowEnd    time.Time        `json:"fertile_window_end"`
	OvulationDate       time.Time        `json:"ovulation_date"`
	PeriodStatus        PeriodStatus     `json:"period_status"`
	ConceptionTiming    ConceptionTiming `json:"conception_timing"`
}

// ComputePeriodStats derives cycle statistics from recorded period entries.
// Stats are recomputed on every read and never persisted. The second return
// value is false when the history is empty and no stats can be derived.
func ComputePeriodStats(history []models.PeriodEntry, today time.Time) (PeriodStats, bool) {
	if len(history) == 0 {
		return PeriodStats{}, false
	}

	sorted := sortEntriesByStartDesc(history)
	lastStart := dateOnly(sorted[0].StartDate)
	today = dateOnly(today)

	stats := PeriodStats{
		AverageCycleLength:  averageCycleLength(sorted),
		AveragePeriodLength: averagePeriodLength(sorted),
		TotalCyclesTracked:  len(sorted),
	}

	stats.CurrentCycleDay = daysBetween(lastStart, today) + 1
	if stats.CurrentCycleDay < 1 {
		stats.CurrentCycleDay = 1
	}

	stats.NextPeriodDate = lastStart.AddDate(0, 0, stats.AverageCycleLength)
	stats.FertileWindowStart = lastStart.AddDate(0, 0, 9)
	stats.FertileWindowEnd = lastStart.AddDate(0, 0, 16)
	stats.OvulationDate = lastStart.AddDate(0, 0, 13)
	stats.ConceptionTiming = ConceptionTiming{
		OptimalWindowStart: stats.OvulationDate.AddDate(0, 0, -2),
		OptimalWindowEnd:   stats.OvulationDate,
	}

	if until := daysBetween(today, stats.NextPeriodDate); until > 0 {
		stats.DaysUntilNextPeriod = until
	}

	stats.PeriodStatus = buildPeriodStatus(sorted, stats.NextPeriodDate, today)

	return stats, true
}

func buildPeriodStatus(sorted []models.PeriodEntry, expected time.Time, today time.Time) PeriodStatus {
	status := PeriodStatus{ExpectedDate: expected}
	if !today.After(expected) {
		return status
	}

	// A period logged on or after the expected date means it arrived.
	for _, entry := range sorted {
		if !dateOnly(entry.StartDate).Before(expected) {
			return status
		}
	}

	status.IsLate = true
	status.DaysLate = daysBetween(expected, today)
	return status
}

func averageCycleLength(sorted []models.PeriodEntry) int {
	samples := make([]int, 0, len(sorted))
	for i := 0; i+1 < len(sorted); i++ {
		gap := daysBetween(dateOnly(sorted[i+1].StartDate), dateOnly(sorted[i].StartDate))
		if gap > 0 && gap <= maxCycleSampleDays {
			samples = append(samples, gap)
		}
	}
	if len(samples) == 0 {
		return models.DefaultCycleLength
	}

	average := roundedAverage(samples)
	if average < minAverageCycleLength {
		return minAverageCycleLength
	}
	return average
}

func averagePeriodLength(sorted []models.PeriodEntry) int {
	samples := make([]int, 0, len(sorted))
	for _, entry := range sorted {
		if entry.EndDate == nil {
			continue
		}
		length := daysBetween(dateOnly(entry.StartDate), dateOnly(*entry.EndDate)) + 1
		if length > 0 {
			samples = append(samples, length)
		}
	}
	if len(samples) == 0 {
		return models.DefaultPeriodLength
	}
	if average := roundedAverage(samples); average >= 1 {
		return average
	}
	return 1
}

// PeriodDuration reports the recorded length of one entry in days: the
// explicit override wins, then the end date. Zero means no length was
// recorded; callers decide between "still ongoing" (the most recent entry)
// and the default span (historical entries).
func PeriodDuration(entry models.PeriodEntry) int {
	if entry.PeriodLengthDays != nil && *entry.PeriodLengthDays > 0 {
		return *entry.PeriodLengthDays
	}
	if entry.EndDate != nil {
		return daysBetween(dateOnly(entry.StartDate), dateOnly(*entry.EndDate)) + 1
	}
	return 0
}

func sortEntriesByStartDesc(history []models.PeriodEntry) []models.PeriodEntry {
	sorted := make([]models.PeriodEntry, 0, len(history))
	sorted = append(sorted, history...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	return sorted
}

func roundedAverage(values []int) int {
	var total int
	for _, value := range values {
		total += value
	}
	return int(float64(total)/float64(len(values)) + 0.5)
}
