package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/labstack/echo/v4"
)

// envelope is the body of every failed request.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []common.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

var errMissingToken = fmt.Errorf("%w: no token", common.ErrorUnauthorized)

// resourceError names the resource a failing handler was working on, so
// that not-found messages can say what was missing.
type resourceError struct {
	resource string
	err      error
}

func (e *resourceError) Error() string { return e.resource + ": " + e.err.Error() }
func (e *resourceError) Unwrap() error { return e.err }

func onResource(resource string, err error) error {
	if err == nil {
		return nil
	}
	return &resourceError{resource: resource, err: err}
}

func ok(c echo.Context, status int, body echo.Map) error {
	body["success"] = true
	return c.JSON(status, body)
}

// listOf keeps empty collections rendering as [] rather than null.
func listOf[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.errorBody(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err.Error())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", err.Error())
	}
}

func (s *Server) errorBody(err error) (int, envelope) {
	resource := "resource"
	var rerr *resourceError
	if errors.As(err, &rerr) {
		resource = rerr.resource
	}

	var verr *common.ValidationError
	var herr *echo.HTTPError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, envelope{Message: "validation failed", Errors: verr.Fields}
	case errors.Is(err, common.ErrDuplicate):
		return http.StatusBadRequest, envelope{Message: resource + " already exists"}
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, envelope{Message: "invalid credentials"}
	case errors.Is(err, errMissingToken):
		return http.StatusUnauthorized, envelope{Message: "not authorized, no token"}
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, envelope{Message: "not authorized, invalid token"}
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, envelope{Message: resource + " not found"}
	case errors.Is(err, common.ErrInvalidReference):
		return http.StatusNotFound, envelope{Message: "invalid subject"}
	case errors.Is(err, common.ErrFeatureDisabled):
		return http.StatusNotImplemented, envelope{Message: "feature not enabled"}
	case errors.As(err, &herr):
		return herr.Code, envelope{Message: httpErrorMessage(herr)}
	}

	body := envelope{Message: "internal server error"}
	if s.opts.ExposeErrors {
		body.Error = err.Error()
	}
	return http.StatusInternalServerError, body
}

func httpErrorMessage(herr *echo.HTTPError) string {
	switch herr.Code {
	case http.StatusNotFound:
		return "route not found"
	case http.StatusMethodNotAllowed:
		return "method not allowed"
	case http.StatusBadRequest:
		return "invalid request body"
	case http.StatusRequestEntityTooLarge:
		return "request body too large"
	}
	if msg, isString := herr.Message.(string); isString {
		return msg
	}
	return http.StatusText(herr.Code)
}
