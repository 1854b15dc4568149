// Package seed supplies the demo records used to bootstrap an empty
// database. The store only applies them to a namespace that has never been
// written; once a user has data, seeds are ignored forever.
package seed

import (
	"time"

	"pawtrail/internal/model"
)

const (
	biscuitID = "seed-pet-biscuit"
	clementID = "seed-pet-clementine"
)

func Pets() []model.Pet {
	return []model.Pet{
		{
			Meta:    model.Meta{ID: biscuitID},
			Name:    "Biscuit",
			Species: "dog",
			Breed:   "Beagle",
		},
		{
			Meta:    model.Meta{ID: clementID},
			Name:    "Clementine",
			Species: "cat",
			Breed:   "Orange Tabby",
		},
	}
}

func Reminders() []model.Reminder {
	return []model.Reminder{
		{
			Title:        "Morning kibble",
			PetID:        biscuitID,
			PetName:      "Biscuit",
			ReminderType: model.ReminderFeeding,
			Time:         "07:30",
			Frequency:    model.Daily,
			IsActive:     true,
		},
		{
			Title:        "Heartworm chew",
			PetID:        biscuitID,
			PetName:      "Biscuit",
			ReminderType: model.ReminderMedication,
			Time:         "18:00",
			Frequency:    model.Monthly,
			IsActive:     true,
			Notes:        "With food",
		},
		{
			Title:        "Litter box scrub",
			PetID:        clementID,
			PetName:      "Clementine",
			ReminderType: model.ReminderGrooming,
			Time:         "10:00",
			Frequency:    model.Weekly,
			IsActive:     true,
		},
		{
			Title:        "Annual checkup",
			PetID:        clementID,
			PetName:      "Clementine",
			ReminderType: model.ReminderVetVisit,
			Time:         "14:00",
			Frequency:    model.Once,
			IsActive:     false,
		},
	}
}

func JournalEntries() []model.JournalEntry {
	return []model.JournalEntry{
		{
			Title:   "First day home",
			Body:    "Biscuit spent the afternoon sniffing every corner of the yard and fell asleep under the porch steps.",
			PetID:   biscuitID,
			PetName: "Biscuit",
			Mood:    "happy",
			Tags:    []string{"milestone"},
		},
	}
}

func QuickLogs() []model.QuickLog {
	return []model.QuickLog{
		{
			PetID:    biscuitID,
			PetName:  "Biscuit",
			LogType:  "weight",
			Value:    "11.2 kg",
			LoggedAt: time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC),
		},
	}
}
