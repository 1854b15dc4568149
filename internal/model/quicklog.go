package model

import (
	"encoding/json"
	"strings"
	"time"
)

// QuickLog is a one-tap observation: a meal, a walk, a weight reading.
// LoggedAt defaults to the submission time when the caller leaves it zero.
type QuickLog struct {
	Meta
	PetID    string    `json:"petId"`
	PetName  string    `json:"petName"`
	LogType  string    `json:"logType"`
	Value    string    `json:"value,omitempty"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"loggedAt,omitzero"`
}

var quickLogKeys = []string{
	"id", "createdAt", "petId", "petName", "logType", "value", "note", "loggedAt",
}

func (q *QuickLog) Validate() error {
	if strings.TrimSpace(q.LogType) == "" {
		return &ValidationError{Field: "logType", Reason: "must not be empty"}
	}
	return nil
}

func (q *QuickLog) UnmarshalJSON(data []byte) error {
	type alias QuickLog
	a := alias(*q)
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, quickLogKeys)
	if err != nil {
		return err
	}
	a.Extra = mergeExtra(a.Extra, extra)
	*q = QuickLog(a)
	return nil
}

func (q QuickLog) MarshalJSON() ([]byte, error) {
	type alias QuickLog
	return marshalWithExtra(alias(q), q.Extra)
}
