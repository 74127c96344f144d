package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	var out struct {
		Subjects []Subject `json:"subjects"`
	}
	if err := c.do(ctx, http.MethodGet, "/subjects", nil, &out); err != nil {
		return nil, err
	}
	return out.Subjects, nil
}

type subjectResponse struct {
	Subject *Subject `json:"subject"`
}

func (c *Client) GetSubject(ctx context.Context, id string) (*Subject, error) {
	var out subjectResponse
	if err := c.do(ctx, http.MethodGet, idPath("subjects", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Subject, nil
}

func (c *Client) CreateSubject(ctx context.Context, in SubjectInput) (*Subject, error) {
	var out subjectResponse
	if err := c.do(ctx, http.MethodPost, "/subjects", in, &out); err != nil {
		return nil, err
	}
	return out.Subject, nil
}

func (c *Client) UpdateSubject(ctx context.Context, id string, p SubjectPatch) (*Subject, error) {
	var out subjectResponse
	if err := c.do(ctx, http.MethodPut, idPath("subjects", id), p, &out); err != nil {
		return nil, err
	}
	return out.Subject, nil
}

func (c *Client) DeleteSubject(ctx context.Context, id string) (*DeleteResult, error) {
	var out struct {
		Deleted *DeleteResult `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, idPath("subjects", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Deleted, nil
}

// ListNotes returns the user's notes; a non-empty subjectID filters them.
func (c *Client) ListNotes(ctx context.Context, subjectID string) ([]Note, error) {
	path := "/notes"
	if subjectID != "" {
		path += "?subject=" + url.QueryEscape(subjectID)
	}

	var out struct {
		Notes []Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

type noteResponse struct {
	Note *Note `json:"note"`
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var out noteResponse
	if err := c.do(ctx, http.MethodGet, idPath("notes", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	var out noteResponse
	if err := c.do(ctx, http.MethodPost, "/notes", in, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, p NotePatch) (*Note, error) {
	var out noteResponse
	if err := c.do(ctx, http.MethodPut, idPath("notes", id), p, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, idPath("notes", id), nil, nil)
}

func (c *Client) ToggleFavorite(ctx context.Context, id string) (*Note, error) {
	var out noteResponse
	if err := c.do(ctx, http.MethodPatch, idPath("notes", id)+"/favorite", nil, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var out struct {
		Events []Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

type eventResponse struct {
	Event *Event `json:"event"`
}

func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	var out eventResponse
	if err := c.do(ctx, http.MethodGet, idPath("events", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*Event, error) {
	var out eventResponse
	if err := c.do(ctx, http.MethodPost, "/events", in, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, p EventPatch) (*Event, error) {
	var out eventResponse
	if err := c.do(ctx, http.MethodPut, idPath("events", id), p, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, idPath("events", id), nil, nil)
}

func (c *Client) ToggleComplete(ctx context.Context, id string) (*Event, error) {
	var out eventResponse
	if err := c.do(ctx, http.MethodPatch, idPath("events", id)+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}
