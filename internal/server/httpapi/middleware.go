package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/logging"
	"github.com/khonsu303/estudio/internal/server/auth"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const (
	userContextKey   = "user"
	claimsContextKey = "claims"
)

// UserIDFromContext returns the id the auth gate attached to a request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, found := ctx.Value(userIDKey).(string)
	return id, found
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authGate resolves the bearer token to a user with a single store lookup
// and attaches it to the request. Any failure ends the request with 401.
func (s *Server) authGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, found := bearerToken(c.Request().Header.Get(common.AuthorizationHeaderName))
		if !found {
			return errMissingToken
		}

		ctx := c.Request().Context()
		user, claims, err := s.svc.Users.Authenticate(ctx, token)
		if err != nil {
			return err
		}

		c.Set(userContextKey, user)
		c.Set(claimsContextKey, claims)
		ctx = logging.ContextWith(context.WithValue(ctx, userIDKey, user.ID), "user_id", user.ID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func currentUser(c echo.Context) *models.User {
	u, _ := c.Get(userContextKey).(*models.User)
	return u
}

func currentClaims(c echo.Context) *auth.Claims {
	cl, _ := c.Get(claimsContextKey).(*auth.Claims)
	return cl
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			// The auth gate puts user_id into the request context fields.
			s.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}

// authRateLimiter throttles credential endpoints per client address.
func (s *Server) authRateLimiter() []echo.MiddlewareFunc {
	if s.opts.AuthRateLimit <= 0 {
		return nil
	}

	burst := s.opts.AuthRateBurst
	if burst < 1 {
		burst = 1
	}

	deny := func(c echo.Context, _ string, _ error) error {
		return c.JSON(http.StatusTooManyRequests, envelope{Message: "too many requests, try again later"})
	}

	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.opts.AuthRateLimit),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, envelope{Message: "unable to identify client"})
		},
		DenyHandler: deny,
	})}
}
