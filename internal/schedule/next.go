// Package schedule computes when a reminder is next due and how to say so.
// Everything here is pure: identical (reminder, now) inputs always produce
// identical outputs, and nothing touches the store or the clock.
//
// Input is assumed validated. The store rejects malformed times at the write
// boundary, so this package does not defend against them; a caller that
// bypasses validation gets meaningless output, not an error.
package schedule

import (
	"fmt"
	"time"

	"pawtrail/internal/model"
)

// Occurrence is a reminder's scheduling state relative to a reference
// instant: a human-readable label, the next instant it fires (nil when it
// never will), and whether a one-shot reminder has already passed.
type Occurrence struct {
	Label   string     `json:"label"`
	At      *time.Time `json:"at"`
	PastDue bool       `json:"pastDue"`
}

// NextOccurrence computes the next time r should fire after now.
//
// Inactive reminders never fire. A "once" reminder is bound to the date of
// its creation: after that instant passes it is permanently past due. It is
// never advanced forward. The repeating frequencies always produce a future
// instant: daily at the next time-of-day slot, weekly on the weekday the
// reminder was created, monthly on the same day of month (clamped to the
// last day of shorter months).
func NextOccurrence(r model.Reminder, now time.Time) Occurrence {
	if !r.IsActive {
		return Occurrence{Label: "Inactive"}
	}

	hour, minute, _ := model.ParseClock(r.Time)
	today := atClock(now, hour, minute)

	var candidate time.Time
	switch r.Frequency {
	case model.Once:
		created := r.CreatedAt.In(now.Location())
		candidate = atClock(created, hour, minute)
		if !candidate.After(now) {
			return Occurrence{Label: "Past due", PastDue: true}
		}

	case model.Daily:
		candidate = today
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}

	case model.Weekly:
		anchor := r.CreatedAt.In(now.Location()).Weekday()
		offset := (int(anchor) - int(now.Weekday()) + 7) % 7
		if offset == 0 && !today.After(now) {
			offset = 7
		}
		candidate = today.AddDate(0, 0, offset)

	case model.Monthly:
		candidate = today
		if !candidate.After(now) {
			candidate = sameDayNextMonth(now, hour, minute)
		}

	default:
		return Occurrence{Label: "Inactive"}
	}

	return Occurrence{
		Label: label(dayDelta(now, candidate), hour, minute),
		At:    &candidate,
	}
}

// UpcomingToday filters to active reminders whose time-of-day is still
// ahead of now today, sorted soonest first and capped at limit. It is a
// same-day convenience view: frequency and anchor dates are ignored.
func UpcomingToday(reminders []model.Reminder, now time.Time, limit int) []model.Reminder {
	nowMinutes := now.Hour()*60 + now.Minute()

	var upcoming []model.Reminder
	for _, r := range reminders {
		if !r.IsActive {
			continue
		}
		if clockMinutes(r) > nowMinutes {
			upcoming = append(upcoming, r)
		}
	}

	sortByClock(upcoming)

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// atClock returns day's date with the given time-of-day.
func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// sameDayNextMonth advances to now's day-of-month in the following calendar
// month. A day the target month does not have clamps to its last day, so a
// reminder anchored on the 31st fires on Feb 28 rather than skipping
// February (or drifting into March the way naive date addition would).
func sameDayNextMonth(now time.Time, hour, minute int) time.Time {
	year, month, day := now.Date()
	month++
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, hour, minute, 0, 0, now.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dayDelta counts whole calendar days from now's date to candidate's date.
func dayDelta(now, candidate time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(candidate.Year(), candidate.Month(), candidate.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// label renders the countdown bucket for a candidate days ahead.
func label(days, hour, minute int) string {
	at := formatClock12(hour, minute)
	switch {
	case days <= 0:
		return "Today at " + at
	case days == 1:
		return "Tomorrow at " + at
	case days < 7:
		return fmt.Sprintf("In %d days at %s", days, at)
	case days < 14:
		return "Next week at " + at
	case days < 30:
		return fmt.Sprintf("In %d weeks at %s", (days+6)/7, at)
	default:
		return fmt.Sprintf("In %d months at %s", (days+29)/30, at)
	}
}

// formatClock12 renders a 24-hour time-of-day as "h:MM AM/PM".
func formatClock12(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}
