package model

import (
	"encoding/json"
	"strings"
)

// JournalEntry is a dated free-text entry about a pet. No recurrence; it
// exists in the store the same way reminders do.
type JournalEntry struct {
	Meta
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	PetID   string   `json:"petId"`
	PetName string   `json:"petName"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

var journalKeys = []string{
	"id", "createdAt", "title", "body", "petId", "petName", "mood", "tags",
}

func (e *JournalEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

func (e *JournalEntry) UnmarshalJSON(data []byte) error {
	type alias JournalEntry
	a := alias(*e)
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, journalKeys)
	if err != nil {
		return err
	}
	a.Extra = mergeExtra(a.Extra, extra)
	*e = JournalEntry(a)
	return nil
}

func (e JournalEntry) MarshalJSON() ([]byte, error) {
	type alias JournalEntry
	return marshalWithExtra(alias(e), e.Extra)
}
