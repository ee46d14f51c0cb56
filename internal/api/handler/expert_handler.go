package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type ExpertHandler struct {
	svc  ports.ExpertService
	auth ports.AuthService
}

func NewExpertHandler(svc ports.ExpertService, auth ports.AuthService) *ExpertHandler {
	return &ExpertHandler{svc: svc, auth: auth}
}

// Signup registers an expert account and returns a fresh token.
//
// @Summary      Register an expert
// @Tags         expert-auth
// @Accept       json
// @Produce      json
// @Param        body  body      expertSignupRequest  true  "Expert registration details"
// @Success      201   {object}  response
// @Failure      400   {object}  map[string]any
// @Router       /api/expert-auth/signup [post]
func (h *ExpertHandler) Signup(c echo.Context) error {
	var req expertSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, expert, err := h.svc.Signup(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "expert registered successfully", tokenPayload{Token: token, Profile: expert})
}

// Login authenticates an expert and returns a token.
//
// @Summary      Expert login
// @Tags         expert-auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  response
// @Failure      401   {object}  map[string]any
// @Failure      423   {object}  map[string]any
// @Router       /api/expert-auth/login [post]
func (h *ExpertHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, view, err := h.auth.Login(c.Request().Context(), domain.RoleExpert, req.Email, req.Password)
	if err != nil {
		return err
	}
	expert, err := h.svc.Get(c.Request().Context(), view.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "login successful", tokenPayload{Token: token, Profile: expert})
}

func (h *ExpertHandler) Signout(c echo.Context) error {
	return respond(c, http.StatusOK, "logged out successfully", nil)
}

func (h *ExpertHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}
	expert, err := h.svc.Get(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", expert)
}

func (h *ExpertHandler) UpdateProfile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}

	var req expertUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	expert, err := h.svc.Update(c.Request().Context(), identity.ID, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile updated successfully", expert)
}

// Create registers an expert record without returning a token.
func (h *ExpertHandler) Create(c echo.Context) error {
	var req expertSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, expert, err := h.svc.Signup(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "expert created successfully", expert)
}

func (h *ExpertHandler) List(c echo.Context) error {
	experts, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", experts)
}

func (h *ExpertHandler) Get(c echo.Context) error {
	expert, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", expert)
}

func (h *ExpertHandler) Update(c echo.Context) error {
	var req expertUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	expert, err := h.svc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "expert updated successfully", expert)
}

func (h *ExpertHandler) Delete(c echo.Context) error {
	if err := h.svc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "expert deactivated successfully", nil)
}

func (h *ExpertHandler) Dashboard(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}
	dash, err := h.svc.Dashboard(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", dash)
}

// CRPs returns the caller's linked CRP as a zero-or-one element list.
func (h *ExpertHandler) CRPs(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}
	crps, err := h.svc.CRPs(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", crps)
}

func (h *ExpertHandler) Farmers(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}
	farmers, err := h.svc.Farmers(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmers)
}

// LinkCRP claims the one-to-one CRP link. A CRP already held by another
// expert is rejected as a conflict.
func (h *ExpertHandler) LinkCRP(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}

	var req crpRefRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expert, err := h.svc.LinkCRP(c.Request().Context(), identity.ID, req.CRPID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "crp linked successfully", expert)
}

func (h *ExpertHandler) UnlinkCRP(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}
	expert, err := h.svc.UnlinkCRP(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "crp unlinked successfully", expert)
}

func (h *ExpertHandler) AddFarmer(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}

	var req farmerRefRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expert, err := h.svc.AddFarmer(c.Request().Context(), identity.ID, req.FarmerID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "farmer added successfully", expert)
}

func (h *ExpertHandler) RemoveFarmer(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}
	expert, err := h.svc.RemoveFarmer(c.Request().Context(), identity.ID, c.Param("farmerId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "farmer removed successfully", expert)
}

func (h *ExpertHandler) UpdateRecommendations(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleExpert)
	if err != nil {
		return err
	}

	var req recommendationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	expert, err := h.svc.UpdateRecommendations(c.Request().Context(), identity.ID, req.toRecommendations())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "recommendations updated successfully", expert)
}
