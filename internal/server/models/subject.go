package models

import "time"

type Subject struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Professor   string    `json:"professor"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SubjectSummary is the subset of a subject embedded into notes and events.
// Icon is empty for events.
type SubjectSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// SubjectPatch holds the optional fields of a partial update.
type SubjectPatch struct {
	Name        *string
	Color       *string
	Icon        *string
	Description *string
	Professor   *string
}
