// Package httpapi is the REST surface of the server: routing, the auth gate,
// request binding and the mapping of service errors to HTTP responses.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/khonsu303/estudio/internal/logging"
	"github.com/khonsu303/estudio/internal/server/services"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 10 * time.Second

// Services are the stores the handlers delegate to.
type Services struct {
	Users    *services.UserService
	Subjects *services.SubjectService
	Notes    *services.NoteService
	Events   *services.EventService
}

// Options tune the API surface.
//
// ExposeErrors adds the underlying error text to 500 responses and must be
// off in production. AuthRateLimit is requests per second per client on
// register and login; zero disables limiting.
type Options struct {
	Version       string
	ExposeErrors  bool
	AuthRateLimit float64
	AuthRateBurst int
}

type Server struct {
	address string
	echo    *echo.Echo
	svc     Services
	logger  logging.Logger
	opts    Options
}

func NewServer(addr string, l logging.Logger, svc Services, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		address: addr,
		echo:    e,
		svc:     svc,
		logger:  l.With("module", "http_server"),
		opts:    opts,
	}
	e.HTTPErrorHandler = s.handleError
	s.routes()

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.echo.Start(s.address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.echo.Shutdown(shutdownCtx)
}
