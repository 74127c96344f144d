package httpapi

import (
	"net/http"

	"github.com/khonsu303/estudio/internal/server/services"
	"github.com/labstack/echo/v4"
)

const eventResource = "event"

func (s *Server) listEvents(c echo.Context) error {
	list, err := s.svc.Events.List(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(list), "events": listOf(list)})
}

func (s *Server) getEvent(c echo.Context) error {
	ev, err := s.svc.Events.Get(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return onResource(eventResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"event": ev})
}

func (s *Server) createEvent(c echo.Context) error {
	var in services.EventInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	ev, err := s.svc.Events.Create(c.Request().Context(), currentUser(c).ID, in)
	if err != nil {
		return onResource(eventResource, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"event": ev})
}

func (s *Server) updateEvent(c echo.Context) error {
	var in services.EventPatchInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	ev, err := s.svc.Events.Update(c.Request().Context(), currentUser(c).ID, c.Param("id"), in)
	if err != nil {
		return onResource(eventResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"event": ev})
}

func (s *Server) deleteEvent(c echo.Context) error {
	if err := s.svc.Events.Delete(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return onResource(eventResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"message": "event deleted"})
}

func (s *Server) toggleComplete(c echo.Context) error {
	ev, err := s.svc.Events.ToggleComplete(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return onResource(eventResource, err)
	}

	msg := "event reopened"
	if ev.Completed {
		msg = "event completed"
	}
	return ok(c, http.StatusOK, echo.Map{"message": msg, "event": ev})
}
