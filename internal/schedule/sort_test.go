package schedule

import (
	"testing"
	"time"

	"pawtrail/internal/model"
)

func TestSortReminders(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	activeOld := model.Reminder{Meta: model.Meta{ID: "active-old", CreatedAt: old}, Time: "06:00", IsActive: true}
	activeNew := model.Reminder{Meta: model.Meta{ID: "active-new", CreatedAt: newer}, Time: "22:00", IsActive: true}
	inactiveNew := model.Reminder{Meta: model.Meta{ID: "inactive-new", CreatedAt: newer}, Time: "05:00", IsActive: false}

	// Active-first must hold for every input permutation, regardless of
	// time-of-day or age.
	perms := [][]model.Reminder{
		{activeOld, activeNew, inactiveNew},
		{activeNew, inactiveNew, activeOld},
		{inactiveNew, activeOld, activeNew},
		{inactiveNew, activeNew, activeOld},
		{activeOld, inactiveNew, activeNew},
		{activeNew, activeOld, inactiveNew},
	}

	for _, perm := range perms {
		rs := make([]model.Reminder, len(perm))
		copy(rs, perm)
		SortReminders(rs)

		want := []string{"active-new", "active-old", "inactive-new"}
		for i, id := range want {
			if rs[i].ID != id {
				t.Fatalf("position %d = %s, want %s (input %v)", i, rs[i].ID, id, ids(perm))
			}
		}
	}
}

func TestSortRemindersTimeTieBreak(t *testing.T) {
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	late := model.Reminder{Meta: model.Meta{ID: "late", CreatedAt: created}, Time: "21:00", IsActive: true}
	early := model.Reminder{Meta: model.Meta{ID: "early", CreatedAt: created}, Time: "07:30", IsActive: true}

	rs := []model.Reminder{late, early}
	SortReminders(rs)

	if rs[0].ID != "early" || rs[1].ID != "late" {
		t.Errorf("order = %v, want early before late", ids(rs))
	}
}

func ids(rs []model.Reminder) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
