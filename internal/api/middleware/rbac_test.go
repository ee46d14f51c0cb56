package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

func invokeRequireRole(t *testing.T, identity *domain.Identity, allowed ...domain.Role) error {
	t.Helper()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if identity != nil {
		c.Set(IdentityKey, identity)
	}

	handler := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequireRole_Allowed(t *testing.T) {
	identity := &domain.Identity{Role: domain.RoleSupervisor, ID: "sup-1"}
	if err := invokeRequireRole(t, identity, domain.RoleSupervisor); err != nil {
		t.Fatalf("allowed role rejected: %v", err)
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	identity := &domain.Identity{Role: domain.RoleExpert, ID: "expert-1"}
	if err := invokeRequireRole(t, identity, domain.RoleCRP, domain.RoleExpert, domain.RoleSupervisor); err != nil {
		t.Fatalf("allowed role rejected: %v", err)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	identity := &domain.Identity{Role: domain.RoleFarmer, ID: "farmer-1"}
	err := invokeRequireRole(t, identity, domain.RoleSupervisor)
	assertHTTPError(t, err, http.StatusForbidden)
}

func TestRequireRole_NoIdentity(t *testing.T) {
	err := invokeRequireRole(t, nil, domain.RoleSupervisor)
	assertHTTPError(t, err, http.StatusUnauthorized)
}
