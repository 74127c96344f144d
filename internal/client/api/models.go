package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Professor   string    `json:"professor"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SubjectSummary is what notes and events embed about their subject.
type SubjectSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

type Note struct {
	ID        string          `json:"id"`
	Subject   *SubjectSummary `json:"subject"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Tags      []string        `json:"tags"`
	Favorite  bool            `json:"isFavorite"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Event struct {
	ID          string          `json:"id"`
	Subject     *SubjectSummary `json:"subject"`
	Title       string          `json:"title"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type SubjectInput struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Professor   string `json:"professor,omitempty"`
}

type SubjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
	Professor   *string `json:"professor,omitempty"`
}

type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Subject string   `json:"subject"`
	Tags    []string `json:"tags,omitempty"`
}

type NotePatch struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Subject *string   `json:"subject,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// EventInput carries the date as an ISO-8601 string, e.g. "2024-06-01".
type EventInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
}

// EventPatch is a partial update. A non-nil empty Subject clears it.
type EventPatch struct {
	Title       *string `json:"title,omitempty"`
	Date        *string `json:"date,omitempty"`
	Type        *string `json:"type,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// DeleteResult reports what the server removed along with a subject.
type DeleteResult struct {
	Notes          int64 `json:"notesDeleted"`
	EventsDeleted  int64 `json:"eventsDeleted"`
	EventsDetached int64 `json:"eventsDetached"`
}

type AvatarUpload struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"avatar"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
