package model

import (
	"encoding/json"
	"strings"
	"time"
)

// ReminderType categorizes what a reminder is for.
type ReminderType string

const (
	ReminderFeeding    ReminderType = "feeding"
	ReminderMedication ReminderType = "medication"
	ReminderExercise   ReminderType = "exercise"
	ReminderVetVisit   ReminderType = "vet_visit"
	ReminderGrooming   ReminderType = "grooming"
	ReminderWeight     ReminderType = "weight"
	ReminderGeneral    ReminderType = "general"
)

var reminderTypes = map[ReminderType]bool{
	ReminderFeeding:    true,
	ReminderMedication: true,
	ReminderExercise:   true,
	ReminderVetVisit:   true,
	ReminderGrooming:   true,
	ReminderWeight:     true,
	ReminderGeneral:    true,
}

// Frequency is a reminder's recurrence rule.
type Frequency string

const (
	Once    Frequency = "once"
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

var frequencies = map[Frequency]bool{
	Once:    true,
	Daily:   true,
	Weekly:  true,
	Monthly: true,
}

// Reminder is a scheduled care task for a pet. Time is a 24-hour "HH:MM"
// time-of-day; the recurrence series is anchored at CreatedAt (see the
// schedule package). LastTriggered is informational only; nothing in the
// scheduling math reads or writes it.
type Reminder struct {
	Meta
	Title         string       `json:"title"`
	PetID         string       `json:"petId"`
	PetName       string       `json:"petName"`
	ReminderType  ReminderType `json:"reminderType"`
	Time          string       `json:"time"`
	Frequency     Frequency    `json:"frequency"`
	IsActive      bool         `json:"isActive"`
	LastTriggered *time.Time   `json:"lastTriggered,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

var reminderKeys = []string{
	"id", "createdAt", "title", "petId", "petName",
	"reminderType", "time", "frequency", "isActive", "lastTriggered", "notes",
}

func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if _, _, err := ParseClock(r.Time); err != nil {
		return &ValidationError{Field: "time", Reason: err.Error()}
	}
	if !reminderTypes[r.ReminderType] {
		return &ValidationError{Field: "reminderType", Reason: "unknown type " + string(r.ReminderType)}
	}
	if !frequencies[r.Frequency] {
		return &ValidationError{Field: "frequency", Reason: "unknown frequency " + string(r.Frequency)}
	}
	return nil
}

// UnmarshalJSON merges the payload onto the current value: fields absent
// from data keep what the receiver already holds. This is what makes a
// store-level patch behave as a field merge rather than a replace.
func (r *Reminder) UnmarshalJSON(data []byte) error {
	type alias Reminder
	a := alias(*r)
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, reminderKeys)
	if err != nil {
		return err
	}
	a.Extra = mergeExtra(a.Extra, extra)
	*r = Reminder(a)
	return nil
}

func (r Reminder) MarshalJSON() ([]byte, error) {
	type alias Reminder
	return marshalWithExtra(alias(r), r.Extra)
}
