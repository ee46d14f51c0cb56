package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type SupervisorHandler struct {
	svc  ports.SupervisorService
	auth ports.AuthService
}

func NewSupervisorHandler(svc ports.SupervisorService, auth ports.AuthService) *SupervisorHandler {
	return &SupervisorHandler{svc: svc, auth: auth}
}

// Signup registers a supervisor account and returns a fresh token.
//
// @Summary      Register a supervisor
// @Tags         supervisor-auth
// @Accept       json
// @Produce      json
// @Param        body  body      supervisorSignupRequest  true  "Supervisor registration details"
// @Success      201   {object}  response
// @Failure      400   {object}  map[string]any
// @Router       /api/supervisor-auth/signup [post]
func (h *SupervisorHandler) Signup(c echo.Context) error {
	var req supervisorSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, supervisor, err := h.svc.Signup(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "supervisor registered successfully", tokenPayload{Token: token, Profile: supervisor})
}

// Login authenticates a supervisor and returns a token.
//
// @Summary      Supervisor login
// @Tags         supervisor-auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  response
// @Failure      401   {object}  map[string]any
// @Failure      423   {object}  map[string]any
// @Router       /api/supervisor-auth/login [post]
func (h *SupervisorHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, view, err := h.auth.Login(c.Request().Context(), domain.RoleSupervisor, req.Email, req.Password)
	if err != nil {
		return err
	}
	supervisor, err := h.svc.Get(c.Request().Context(), view.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "login successful", tokenPayload{Token: token, Profile: supervisor})
}

func (h *SupervisorHandler) Signout(c echo.Context) error {
	return respond(c, http.StatusOK, "logged out successfully", nil)
}

func (h *SupervisorHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}
	supervisor, err := h.svc.Get(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", supervisor)
}

func (h *SupervisorHandler) UpdateProfile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}

	var req supervisorUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	supervisor, err := h.svc.Update(c.Request().Context(), identity.ID, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile updated successfully", supervisor)
}

// Overview returns system-wide actor counts.
func (h *SupervisorHandler) Overview(c echo.Context) error {
	stats, err := h.svc.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", stats)
}

// AggregatedFarmers returns frequency tables over the whole farmer corpus.
func (h *SupervisorHandler) AggregatedFarmers(c echo.Context) error {
	agg, err := h.svc.AggregatedFarmerData(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", agg)
}

func (h *SupervisorHandler) CRPReports(c echo.Context) error {
	reports, err := h.svc.CRPReports(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", reports)
}

func (h *SupervisorHandler) ExpertRecommendations(c echo.Context) error {
	recs, err := h.svc.ExpertRecommendations(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", recs)
}

func (h *SupervisorHandler) CreateFollowUpTask(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}

	var req followUpTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.svc.CreateFollowUpTask(c.Request().Context(), identity.ID, req.toTask())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "follow-up task created", task)
}

func (h *SupervisorHandler) UpdateFollowUpTask(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}

	var req taskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.UpdateFollowUpTask(c.Request().Context(), identity.ID, c.Param("id"), req.Status); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "follow-up task updated", nil)
}

// Export snapshots one dataset and records the export on the supervisor.
func (h *SupervisorHandler) Export(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}
	result, err := h.svc.Export(c.Request().Context(), identity.ID, c.Param("type"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", result)
}

func (h *SupervisorHandler) Experts(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}
	experts, err := h.svc.Experts(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", experts)
}

// CRPs lists CRPs reachable through the supervisor's experts.
func (h *SupervisorHandler) CRPs(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}
	crps, err := h.svc.CRPs(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", crps)
}

// Farmers lists the deduplicated union of farmers under the supervisor's
// experts.
func (h *SupervisorHandler) Farmers(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}
	farmers, err := h.svc.Farmers(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmers)
}

func (h *SupervisorHandler) Dashboard(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}
	dash, err := h.svc.Dashboard(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", dash)
}

func (h *SupervisorHandler) AssignExpert(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}

	var req expertRefRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expert, err := h.svc.AssignExpert(c.Request().Context(), identity.ID, req.ExpertID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "expert assigned successfully", expert)
}

func (h *SupervisorHandler) RemoveExpert(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleSupervisor)
	if err != nil {
		return err
	}
	expert, err := h.svc.RemoveExpert(c.Request().Context(), identity.ID, c.Param("expertId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "expert removed successfully", expert)
}
