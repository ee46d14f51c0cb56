package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// IdentityKey is the echo context key under which Auth stores the resolved
// caller identity.
const IdentityKey = "identity"

// Auth validates the bearer token and injects the resolved identity into
// context. Expired and malformed tokens get distinct messages so clients can
// tell a re-login from a bug; both are 401.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := auth.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				case errors.Is(err, domain.ErrTokenMalformed):
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				case errors.Is(err, domain.ErrUnauthenticated):
					return echo.NewHTTPError(http.StatusUnauthorized, "account not found or inactive")
				}
				return err
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// Identity extracts the identity injected by Auth, or nil when absent.
func Identity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(IdentityKey).(*domain.Identity)
	return identity
}
