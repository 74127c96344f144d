package httpapi

import (
	"net/http"

	"github.com/khonsu303/estudio/internal/server/services"
	"github.com/labstack/echo/v4"
)

const subjectResource = "subject"

func (s *Server) listSubjects(c echo.Context) error {
	list, err := s.svc.Subjects.List(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(list), "subjects": listOf(list)})
}

func (s *Server) getSubject(c echo.Context) error {
	sub, err := s.svc.Subjects.Get(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return onResource(subjectResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"subject": sub})
}

func (s *Server) createSubject(c echo.Context) error {
	var in services.SubjectInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	sub, err := s.svc.Subjects.Create(c.Request().Context(), currentUser(c).ID, in)
	if err != nil {
		return onResource(subjectResource, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"subject": sub})
}

func (s *Server) updateSubject(c echo.Context) error {
	var in services.SubjectPatchInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	sub, err := s.svc.Subjects.Update(c.Request().Context(), currentUser(c).ID, c.Param("id"), in)
	if err != nil {
		return onResource(subjectResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{"subject": sub})
}

func (s *Server) deleteSubject(c echo.Context) error {
	res, err := s.svc.Subjects.Delete(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return onResource(subjectResource, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"message": "subject and its notes deleted",
		"deleted": res,
	})
}
