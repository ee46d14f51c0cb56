package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type FarmerHandler struct {
	svc  ports.FarmerService
	auth ports.AuthService
}

func NewFarmerHandler(svc ports.FarmerService, auth ports.AuthService) *FarmerHandler {
	return &FarmerHandler{svc: svc, auth: auth}
}

// Signup registers a farmer account and returns a fresh token.
//
// @Summary      Register a farmer
// @Tags         farmer-auth
// @Accept       json
// @Produce      json
// @Param        body  body      farmerSignupRequest  true  "Farmer registration details"
// @Success      201   {object}  response
// @Failure      400   {object}  map[string]any
// @Router       /api/farmer-auth/signup [post]
func (h *FarmerHandler) Signup(c echo.Context) error {
	var req farmerSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, farmer, err := h.svc.Signup(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "farmer registered successfully", tokenPayload{Token: token, Profile: farmer})
}

// Login authenticates a farmer and returns a token.
//
// @Summary      Farmer login
// @Tags         farmer-auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  response
// @Failure      401   {object}  map[string]any
// @Failure      423   {object}  map[string]any
// @Router       /api/farmer-auth/login [post]
func (h *FarmerHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, view, err := h.auth.Login(c.Request().Context(), domain.RoleFarmer, req.Email, req.Password)
	if err != nil {
		return err
	}
	farmer, err := h.svc.Get(c.Request().Context(), view.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "login successful", tokenPayload{Token: token, Profile: farmer})
}

// Signout acknowledges logout. Tokens are stateless, the client discards it.
func (h *FarmerHandler) Signout(c echo.Context) error {
	return respond(c, http.StatusOK, "logged out successfully", nil)
}

func (h *FarmerHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleFarmer)
	if err != nil {
		return err
	}
	farmer, err := h.svc.Get(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmer)
}

func (h *FarmerHandler) UpdateProfile(c echo.Context) error {
	identity, err := ctxIdentity(c, domain.RoleFarmer)
	if err != nil {
		return err
	}

	var req farmerUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	farmer, err := h.svc.Update(c.Request().Context(), identity.ID, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile updated successfully", farmer)
}

// Create registers a farmer record without issuing a token.
func (h *FarmerHandler) Create(c echo.Context) error {
	var req farmerSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	farmer, err := h.svc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "farmer created successfully", farmer)
}

func (h *FarmerHandler) List(c echo.Context) error {
	farmers, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmers)
}

func (h *FarmerHandler) Get(c echo.Context) error {
	farmer, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", farmer)
}

func (h *FarmerHandler) Update(c echo.Context) error {
	var req farmerUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	farmer, err := h.svc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "farmer updated successfully", farmer)
}

// Delete deactivates the record; the account itself is retained.
func (h *FarmerHandler) Delete(c echo.Context) error {
	if err := h.svc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "farmer deactivated successfully", nil)
}
