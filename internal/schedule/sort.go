package schedule

import (
	"sort"

	"pawtrail/internal/model"
)

// SortReminders orders a list the way it is presented: active reminders
// first, then newest created first, then earliest time-of-day first. The
// sort is stable so equal records keep their insertion order.
func SortReminders(reminders []model.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		if a.IsActive != b.IsActive {
			return a.IsActive
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return clockMinutes(a) < clockMinutes(b)
	})
}

func sortByClock(reminders []model.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return clockMinutes(reminders[i]) < clockMinutes(reminders[j])
	})
}

func clockMinutes(r model.Reminder) int {
	hour, minute, _ := model.ParseClock(r.Time)
	return hour*60 + minute
}
