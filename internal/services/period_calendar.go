package services

import (
	"time"

	"github.com/trangvt/claria/internal/models"
)

const calendarGridSize = 42

const (
	FertilityNone     = "none"
	FertilityLow      = "low"
	FertilityModerate = "moderate"
	FertilityHigh     = "high"
	FertilityPeak     = "peak"
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulatory  = "ovulatory"
	PhaseLuteal     = "luteal"
)

const (
	DayStatusPeriod     = "period"
	DayStatusLate       = "late"
	DayStatusPeak       = "peak"
	DayStatusOvulation  = "ovulation"
	DayStatusConception = "conception"
	DayStatusFertile    = "fertile"
	DayStatusPredicted  = "predicted"
	DayStatusNormal     = "normal"
)

type CalendarDay struct {
	Date                time.Time `json:"date"`
	DateString          string    `json:"date_string"`
	DayNumber           int       `json:"day_number"`
	IsCurrentMonth      bool      `json:"is_current_month"`
	IsToday             bool      `json:"is_today"`
	IsPeriodDay         bool      `json:"is_period_day"`
	IsOngoingPeriod     bool      `json:"is_ongoing_period"`
	IsFertileDay        bool      `json:"is_fertile_day"`
	IsOvulationDay      bool      `json:"is_ovulation_day"`
	IsPredictedPeriod   bool      `json:"is_predicted_period"`
	IsPeakFertility     bool      `json:"is_peak_fertility"`
	IsOptimalConception bool      `json:"is_optimal_conception"`
	IsLatePeriod        bool      `json:"is_late_period"`
	DaysLate            int       `json:"days_late,omitempty"`
	FertilityLevel      string    `json:"fertility_level"`
	CyclePhase          string    `json:"cycle_phase"`
	ConceptionChance    int       `json:"conception_chance_percent"`
	Status              string    `json:"status"`
}

// BuildCalendarMonth renders the month containing monthAnchor as a fixed
// 6x7 grid: 42 days starting on the Sunday on or before the 1st. It is a pure
// projection of (history, stats, today, monthAnchor); with nil stats the
// heuristic day-offset fallbacks keep the grid renderable.
func BuildCalendarMonth(history []models.PeriodEntry, stats *PeriodStats, today time.Time, monthAnchor time.Time) []CalendarDay {
	today = dateOnly(today)
	monthStart := time.Date(monthAnchor.Year(), monthAnchor.Month(), 1, 0, 0, 0, 0, monthAnchor.Location())
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))

	days := make([]CalendarDay, 0, calendarGridSize)
	for offset := 0; offset < calendarGridSize; offset++ {
		date := gridStart.AddDate(0, 0, offset)
		days = append(days, classifyCalendarDay(date, monthStart.Month(), history, stats, today))
	}
	return days
}

func classifyCalendarDay(date time.Time, month time.Month, history []models.PeriodEntry, stats *PeriodStats, today time.Time) CalendarDay {
	day := CalendarDay{
		Date:           date,
		DateString:     date.Format("2006-01-02"),
		DayNumber:      date.Day(),
		IsCurrentMonth: date.Month() == month,
		IsToday:        sameDay(date, today),
	}

	day.IsPeriodDay = isPeriodDay(date, history, today)
	day.IsOngoingPeriod = isOngoingPeriodDay(date, history, today)
	day.IsFertileDay = isFertileDay(date, history, stats)
	day.IsOvulationDay = isOvulationDay(date, history, stats)
	day.IsPredictedPeriod = isPredictedPeriod(date, history, stats)
	day.FertilityLevel = fertilityLevel(date, stats)
	day.IsPeakFertility = day.FertilityLevel == FertilityPeak
	day.IsOptimalConception = isOptimalConception(date, stats)
	day.IsLatePeriod, day.DaysLate = latePeriodToday(date, today, stats)
	day.CyclePhase = cyclePhase(date, day.IsPeriodDay, stats)
	day.ConceptionChance = ConceptionChancePercent(day.FertilityLevel)
	day.Status = dayStatus(day)

	return day
}

// dayStatus picks the single base rendering style; the boolean flags remain
// independently set for layered indicators.
func dayStatus(day CalendarDay) string {
	switch {
	case day.IsPeriodDay:
		return DayStatusPeriod
	case day.IsLatePeriod:
		return DayStatusLate
	case day.IsPeakFertility:
		return DayStatusPeak
	case day.IsOvulationDay:
		return DayStatusOvulation
	case day.IsOptimalConception:
		return DayStatusConception
	case day.IsFertileDay:
		return DayStatusFertile
	case day.IsPredictedPeriod:
		return DayStatusPredicted
	default:
		return DayStatusNormal
	}
}

func isPeriodDay(date time.Time, history []models.PeriodEntry, today time.Time) bool {
	latest := latestEntryStart(history)
	for _, entry := range history {
		start := dateOnly(entry.StartDate)
		duration := PeriodDuration(entry)
		if duration == 0 {
			// Only the most recent entry can still be ongoing; it runs from
			// its start through today inclusive. Older entries without an end
			// date fall back to the default span.
			if sameDay(start, latest) {
				if betweenInclusive(date, start, today) {
					return true
				}
				continue
			}
			duration = models.DefaultPeriodLength
		}
		if betweenInclusive(date, start, start.AddDate(0, 0, duration-1)) {
			return true
		}
	}
	return false
}

func isOngoingPeriodDay(date time.Time, history []models.PeriodEntry, today time.Time) bool {
	latest := latestEntryStart(history)
	for _, entry := range history {
		if PeriodDuration(entry) != 0 {
			continue
		}
		start := dateOnly(entry.StartDate)
		if !sameDay(start, latest) {
			continue
		}
		if betweenInclusive(date, start, today) {
			return true
		}
	}
	return false
}

func latestEntryStart(history []models.PeriodEntry) time.Time {
	var latest time.Time
	for _, entry := range history {
		if start := dateOnly(entry.StartDate); start.After(latest) {
			latest = start
		}
	}
	return latest
}

func fertilityLevel(date time.Time, stats *PeriodStats) string {
	if stats == nil {
		return FertilityNone
	}
	if sameDay(date, stats.OvulationDate) {
		return FertilityPeak
	}
	if !betweenInclusive(date, stats.FertileWindowStart, stats.FertileWindowEnd) {
		return FertilityNone
	}

	distance := daysBetween(stats.OvulationDate, date)
	if distance < 0 {
		distance = -distance
	}
	switch {
	case distance <= 1:
		return FertilityPeak
	case distance <= 2:
		return FertilityHigh
	case distance <= 3:
		return FertilityModerate
	default:
		return FertilityLow
	}
}

func ConceptionChancePercent(level string) int {
	switch level {
	case FertilityPeak:
		return 95
	case FertilityHigh:
		return 75
	case FertilityModerate:
		return 50
	case FertilityLow:
		return 25
	default:
		return 5
	}
}

func isFertileDay(date time.Time, history []models.PeriodEntry, stats *PeriodStats) bool {
	if stats != nil {
		return betweenInclusive(date, stats.FertileWindowStart, stats.FertileWindowEnd)
	}
	// Fallback: days 10-17 after each recorded start.
	for _, entry := range history {
		start := dateOnly(entry.StartDate)
		if betweenInclusive(date, start.AddDate(0, 0, 9), start.AddDate(0, 0, 16)) {
			return true
		}
	}
	return false
}

func isOvulationDay(date time.Time, history []models.PeriodEntry, stats *PeriodStats) bool {
	if stats != nil {
		return sameDay(date, stats.OvulationDate)
	}
	// Fallback: day 14 after each recorded start.
	for _, entry := range history {
		if sameDay(date, dateOnly(entry.StartDate).AddDate(0, 0, 13)) {
			return true
		}
	}
	return false
}

func isPredictedPeriod(date time.Time, history []models.PeriodEntry, stats *PeriodStats) bool {
	if len(history) == 0 {
		return false
	}
	if stats != nil {
		end := stats.NextPeriodDate.AddDate(0, 0, stats.AveragePeriodLength-1)
		return betweenInclusive(date, stats.NextPeriodDate, end)
	}

	// Fallback: default cycle after the most recent start, default span.
	lastStart := dateOnly(history[0].StartDate)
	for _, entry := range history[1:] {
		if start := dateOnly(entry.StartDate); start.After(lastStart) {
			lastStart = start
		}
	}
	predictedStart := lastStart.AddDate(0, 0, models.DefaultCycleLength)
	predictedEnd := predictedStart.AddDate(0, 0, models.DefaultPeriodLength-1)
	return betweenInclusive(date, predictedStart, predictedEnd)
}

func isOptimalConception(date time.Time, stats *PeriodStats) bool {
	if stats == nil {
		return false
	}
	return betweenInclusive(date, stats.ConceptionTiming.OptimalWindowStart, stats.ConceptionTiming.OptimalWindowEnd)
}

// latePeriodToday marks only today's cell, and only while the expected period
// has not arrived.
func latePeriodToday(date time.Time, today time.Time, stats *PeriodStats) (bool, int) {
	if stats == nil || !stats.PeriodStatus.IsLate {
		return false, 0
	}
	if !sameDay(date, today) || !today.After(stats.PeriodStatus.ExpectedDate) {
		return false, 0
	}
	return true, stats.PeriodStatus.DaysLate
}

func cyclePhase(date time.Time, isPeriod bool, stats *PeriodStats) string {
	if isPeriod {
		return PhaseMenstrual
	}
	if stats == nil {
		return PhaseFollicular
	}

	distance := daysBetween(stats.OvulationDate, date)
	if distance < 0 {
		distance = -distance
	}
	if distance <= 1 {
		return PhaseOvulatory
	}
	if date.Before(stats.OvulationDate) {
		return PhaseFollicular
	}
	return PhaseLuteal
}

// PreviousMonth and NextMonth shift a month anchor by whole calendar months,
// handling year rollover.
func PreviousMonth(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month()-1, 1, 0, 0, 0, 0, anchor.Location())
}

func NextMonth(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month()+1, 1, 0, 0, 0, 0, anchor.Location())
}

func MonthLabel(anchor time.Time) string {
	return anchor.Format("January 2006")
}
