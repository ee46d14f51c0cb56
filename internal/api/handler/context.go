package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/api/middleware"
	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call when the required role does not match.
// Role mismatch inside a role-scoped group is a hard 403 even if the RBAC
// middleware was skipped on some route.
func ctxIdentity(c echo.Context, want domain.Role) (*domain.Identity, error) {
	identity := middleware.Identity(c)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if identity.Role != want {
		return nil, domain.ErrForbidden
	}
	return identity, nil
}
