package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type CRPHandler struct {
	svc  ports.CRPService
	auth ports.AuthService
}

func NewCRPHandler(svc ports.CRPService, auth ports.AuthService) *CRPHandler {
	return &CRPHandler{svc: svc, auth: auth}
}

// Signup registers a CRP account and returns a fresh token.
//
// @Summary      Register a CRP
// @Tags         crp-auth
// @Accept       json
// @Produce      json
// @Param        body  body      crpSignupRequest  true  "CRP registration details"
// @Success      201   {object}  response
// @Failure      400   {object}  map[string]any
// @Router       /api/crp-auth/signup [post]
func (h *CRPHandler) Signup(c echo.Context) error {
	var req crpSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, crp, err := h.svc.Signup(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "crp registered successfully", tokenPayload{Token: token, Profile: crp})
}

// Login authenticates a CRP and returns a token.
//
// @Summary      CRP login
// @Tags         crp-auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  response
// @Failure      401   {object}  map[string]any
// @Failure      423   {object}  map[string]any
// @Router       /api/crp-auth/login [post]
func (h *CRPHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, view, err := h.auth.Login(c.Request().Context(), domain.RoleCRP, req.Email, req.Password)
	if err != nil {
		return err
	}
	crp, err := h.svc.Get(c.Request().Context(), view.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "login successful", tokenPayload{Token: token, Profile: crp})
}

func (h *CRPHandler) Signout(c echo.Context) error {
	return respond(c, http.StatusOK, "logged out successfully", nil)
}

func (h *CRPHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	crp, err := h.svc.Get(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", crp)
}

func (h *CRPHandler) UpdateProfile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}

	var req crpUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	crp, err := h.svc.Update(c.Request().Context(), identity.ID, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile updated successfully", crp)
}

// Create registers a CRP record without returning a token.
func (h *CRPHandler) Create(c echo.Context) error {
	var req crpSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, crp, err := h.svc.Signup(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "crp created successfully", crp)
}

func (h *CRPHandler) List(c echo.Context) error {
	crps, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", crps)
}

func (h *CRPHandler) Get(c echo.Context) error {
	crp, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", crp)
}

func (h *CRPHandler) Update(c echo.Context) error {
	var req crpUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	crp, err := h.svc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "crp updated successfully", crp)
}

func (h *CRPHandler) Delete(c echo.Context) error {
	if err := h.svc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "crp deactivated successfully", nil)
}

// Dashboard returns counts plus the most recently assigned farmers.
func (h *CRPHandler) Dashboard(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	dash, err := h.svc.Dashboard(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", dash)
}

// Farmers lists the caller's assigned farmers, optionally filtered by the
// district and crop query parameters.
func (h *CRPHandler) Farmers(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	filter := ports.FarmerFilter{
		District: c.QueryParam("district"),
		Crop:     c.QueryParam("crop"),
	}
	farmers, err := h.svc.Farmers(c.Request().Context(), identity.ID, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmers)
}

// FarmersByDistrict is the path-parameter form of the district filter.
func (h *CRPHandler) FarmersByDistrict(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	farmers, err := h.svc.Farmers(c.Request().Context(), identity.ID, ports.FarmerFilter{District: c.Param("district")})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmers)
}

// FarmersByCrop is the path-parameter form of the crop filter.
func (h *CRPHandler) FarmersByCrop(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	farmers, err := h.svc.Farmers(c.Request().Context(), identity.ID, ports.FarmerFilter{Crop: c.Param("crop")})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmers)
}

// FarmerDetail returns one assigned farmer; farmers outside the caller's
// list are forbidden, not just absent.
func (h *CRPHandler) FarmerDetail(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	farmer, err := h.svc.FarmerDetail(c.Request().Context(), identity.ID, c.Param("farmerId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmer)
}

func (h *CRPHandler) AddFarmer(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
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

	crp, err := h.svc.AddFarmer(c.Request().Context(), identity.ID, req.FarmerID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "farmer added successfully", crp)
}

func (h *CRPHandler) RemoveFarmer(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	crp, err := h.svc.RemoveFarmer(c.Request().Context(), identity.ID, c.Param("farmerId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "farmer removed successfully", crp)
}

func (h *CRPHandler) UpdateVisitReport(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}

	var req visitReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	crp, err := h.svc.UpdateVisitReport(c.Request().Context(), identity.ID, req.toReport())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "visit report updated successfully", crp)
}

// Trainings projects the canonical training records down to the caller.
func (h *CRPHandler) Trainings(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleCRP)
	if err != nil {
		return err
	}
	trainings, err := h.svc.Trainings(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", trainings)
}
