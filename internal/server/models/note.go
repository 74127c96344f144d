package models

import "time"

type Note struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user"`
	SubjectID string          `json:"-"`
	Subject   *SubjectSummary `json:"subject"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Tags      []string        `json:"tags"`
	Favorite  bool            `json:"isFavorite"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type NotePatch struct {
	Title     *string
	Content   *string
	SubjectID *string
	Tags      *[]string
}
