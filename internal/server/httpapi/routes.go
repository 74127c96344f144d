package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) routes() {
	e := s.echo

	e.Use(middleware.Recover())
	e.Use(s.requestLogger())

	e.GET("/", s.banner)

	api := e.Group("/api")
	api.GET("/health", s.health)

	authRoutes := api.Group("/auth")
	limited := s.authRateLimiter()
	authRoutes.POST("/register", s.register, limited...)
	authRoutes.POST("/login", s.login, limited...)
	authRoutes.GET("/me", s.me, s.authGate)
	authRoutes.PUT("/update", s.updateProfile, s.authGate)
	authRoutes.POST("/logout", s.logout, s.authGate)
	authRoutes.POST("/avatar", s.avatar, s.authGate)

	subjects := api.Group("/subjects", s.authGate)
	subjects.GET("", s.listSubjects)
	subjects.POST("", s.createSubject)
	subjects.GET("/:id", s.getSubject)
	subjects.PUT("/:id", s.updateSubject)
	subjects.DELETE("/:id", s.deleteSubject)

	notes := api.Group("/notes", s.authGate)
	notes.GET("", s.listNotes)
	notes.POST("", s.createNote)
	notes.GET("/:id", s.getNote)
	notes.PUT("/:id", s.updateNote)
	notes.DELETE("/:id", s.deleteNote)
	notes.PATCH("/:id/favorite", s.toggleFavorite)

	events := api.Group("/events", s.authGate)
	events.GET("", s.listEvents)
	events.POST("", s.createEvent)
	events.GET("/:id", s.getEvent)
	events.PUT("/:id", s.updateEvent)
	events.DELETE("/:id", s.deleteEvent)
	events.PATCH("/:id/complete", s.toggleComplete)
}

func (s *Server) banner(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{
		"message": "Estudio API",
		"version": s.opts.Version,
	})
}

func (s *Server) health(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
