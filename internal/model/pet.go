package model

import (
	"encoding/json"
	"strings"
)

// Pet is the association target for reminders, journal entries, and quick
// logs. The scheduling code treats pet ids as opaque.
type Pet struct {
	Meta
	Name      string `json:"name"`
	Species   string `json:"species,omitempty"`
	Breed     string `json:"breed,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

var petKeys = []string{
	"id", "createdAt", "name", "species", "breed", "birthDate", "photoUrl",
}

func (p *Pet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

func (p *Pet) UnmarshalJSON(data []byte) error {
	type alias Pet
	a := alias(*p)
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, petKeys)
	if err != nil {
		return err
	}
	a.Extra = mergeExtra(a.Extra, extra)
	*p = Pet(a)
	return nil
}

func (p Pet) MarshalJSON() ([]byte, error) {
	type alias Pet
	return marshalWithExtra(alias(p), p.Extra)
}
