package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/infrastructure"
	"foodgram-service/internal/infrastructure/authz"
	"foodgram-service/internal/infrastructure/logger"
)

const identityKey = "identity"

// Authenticate attaches the caller identity when a bearer token is present.
// Requests without a token continue as anonymous; a bad token is rejected.
func Authenticate(jwtService *infrastructure.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return domainerr.Unauthorized("authorization header must be 'Bearer <token>'")
			}
			identity, err := jwtService.ParseToken(strings.TrimSpace(token))
			if err != nil {
				return err
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func identityFrom(c echo.Context) *infrastructure.Identity {
	identity, _ := c.Get(identityKey).(*infrastructure.Identity)
	return identity
}

// viewerID is nil for anonymous callers.
func viewerID(c echo.Context) *uuid.UUID {
	if identity := identityFrom(c); identity != nil {
		id := identity.UserID
		return &id
	}
	return nil
}

func roleOf(c echo.Context) string {
	if identity := identityFrom(c); identity != nil {
		return identity.Role
	}
	return authz.RoleAnonymous
}

// RequirePermission consults the role policy. Anonymous callers that are
// refused get 401 so clients know to authenticate.
func RequirePermission(enforcer *authz.Enforcer, object, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := roleOf(c)
			allowed, err := enforcer.Allowed(role, object, action)
			if err != nil {
				return err
			}
			if !allowed {
				if role == authz.RoleAnonymous {
					return domainerr.Unauthorized("authentication credentials were not provided")
				}
				return domainerr.Forbidden("you do not have permission to perform this action")
			}
			return next(c)
		}
	}
}

// RateLimit keys buckets by user when authenticated and by client IP otherwise.
func RateLimit(limiter *infrastructure.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if identity := identityFrom(c); identity != nil {
				key = "user:" + identity.UserID.String()
			}
			if !limiter.Allow(key) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = statusForError(err)
				}
			}
			log.Info("request",
				"method", c.Request().Method,
				"route", c.Path(),
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
