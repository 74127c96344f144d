package httpapi

import (
	"net/http"

	"github.com/khonsu303/estudio/internal/server/services"
	"github.com/labstack/echo/v4"
)

const noteResource = "note"

func (s *Server) listNotes(c echo.Context) error {
	list, err := s.svc.Notes.List(c.Request().Context(), currentUser(c).ID, c.QueryParam("subject"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(list), "notes": listOf(list)})
}

func (s *Server) getNote(c echo.Context) error {
	n, err := s.svc.Notes.Get(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return onResource(noteResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"note": n})
}

func (s *Server) createNote(c echo.Context) error {
	var in services.NoteInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	n, err := s.svc.Notes.Create(c.Request().Context(), currentUser(c).ID, in)
	if err != nil {
		return onResource(noteResource, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"note": n})
}

func (s *Server) updateNote(c echo.Context) error {
	var in services.NotePatchInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	n, err := s.svc.Notes.Update(c.Request().Context(), currentUser(c).ID, c.Param("id"), in)
	if err != nil {
		return onResource(noteResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"note": n})
}

func (s *Server) deleteNote(c echo.Context) error {
	if err := s.svc.Notes.Delete(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return onResource(noteResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"message": "note deleted"})
}

func (s *Server) toggleFavorite(c echo.Context) error {
	n, err := s.svc.Notes.ToggleFavorite(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return onResource(noteResource, err)
	}

	msg := "removed from favorites"
	if n.Favorite {
		msg = "added to favorites"
	}
	return ok(c, http.StatusOK, echo.Map{"message": msg, "note": n})
}
