package httpapi

import (
	"net/http"

	"github.com/khonsu303/estudio/internal/server/services"
	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	var in services.RegisterInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	sess, err := s.svc.Users.Register(c.Request().Context(), in)
	if err != nil {
		return onResource("user", err)
	}

	return ok(c, http.StatusCreated, echo.Map{
		"message": "user registered",
		"token":   sess.Token,
		"user":    sess.User,
	})
}

func (s *Server) login(c echo.Context) error {
	var in services.LoginInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	sess, err := s.svc.Users.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   sess.Token,
		"user":    sess.User,
	})
}

func (s *Server) me(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"user": currentUser(c)})
}

func (s *Server) updateProfile(c echo.Context) error {
	var in services.UpdateProfileInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	user, err := s.svc.Users.UpdateProfile(c.Request().Context(), currentUser(c).ID, in)
	if err != nil {
		return onResource("email", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"message": "profile updated",
		"user":    user,
	})
}

func (s *Server) logout(c echo.Context) error {
	if err := s.svc.Users.Logout(c.Request().Context(), currentClaims(c)); err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "logged out"})
}

func (s *Server) avatar(c echo.Context) error {
	var in services.AvatarInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	up, err := s.svc.Users.RequestAvatarUpload(c.Request().Context(), currentUser(c).ID, in)
	if err != nil {
		return onResource("user", err)
	}

	return ok(c, http.StatusOK, echo.Map{"upload": up})
}
