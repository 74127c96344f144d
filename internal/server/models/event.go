package models

import "time"

// Event is a calendar entry. SubjectID may reference a subject that no
// longer exists when the keep cascade policy is in effect; Subject is nil then.
type Event struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user"`
	SubjectID   *string         `json:"-"`
	Subject     *SubjectSummary `json:"subject"`
	Title       string          `json:"title"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// EventPatch holds the optional fields of a partial update. ClearSubject
// removes the subject reference.
type EventPatch struct {
	Title        *string
	Date         *time.Time
	Type         *string
	SubjectID    *string
	ClearSubject bool
	Description  *string
	Completed    *bool
}
