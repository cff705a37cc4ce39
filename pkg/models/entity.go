package models

import "slices"

// Character is a person in the story. Appearances lists the ids of the
// documents that reference the character; it mirrors Document.CharacterIDs.
type Character struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Role        string   `json:"role,omitempty" yaml:"role,omitempty"`
	Age         *int     `json:"age,omitempty" yaml:"age,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Appearances []string `json:"appearances,omitempty" yaml:"appearances,omitempty,flow"`
}

// Clone returns a deep copy of the character.
func (c Character) Clone() Character {
	c.Appearances = slices.Clone(c.Appearances)
	return c
}

// Location is a place in the story. Appearances mirrors Document.LocationIDs.
type Location struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Appearances []string `json:"appearances,omitempty" yaml:"appearances,omitempty,flow"`
}

// Clone returns a deep copy of the location.
func (l Location) Clone() Location {
	l.Appearances = slices.Clone(l.Appearances)
	return l
}
