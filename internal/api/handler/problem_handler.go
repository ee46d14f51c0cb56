package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type ProblemHandler struct {
	svc ports.ProblemService
}

func NewProblemHandler(svc ports.ProblemService) *ProblemHandler {
	return &ProblemHandler{svc: svc}
}

type problemRequest struct {
	Issue       string `json:"issue" validate:"required"`
	Description string `json:"description"`
	Solved      bool   `json:"solved"`
	FarmerID    string `json:"farmer_id" validate:"required"`
	Image       string `json:"image"`
	Video       string `json:"video"`
}

type problemUpdateRequest struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
	Solved      bool   `json:"solved"`
	Image       string `json:"image"`
	Video       string `json:"video"`
}

func (h *ProblemHandler) Create(c echo.Context) error {
	var req problemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	problem, err := h.svc.Create(c.Request().Context(), &domain.Problem{
		Issue:       req.Issue,
		Description: req.Description,
		Solved:      req.Solved,
		FarmerID:    req.FarmerID,
		Image:       req.Image,
		Video:       req.Video,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "problem reported successfully", problem)
}

func (h *ProblemHandler) ListByFarmer(c echo.Context) error {
	problems, err := h.svc.ListByFarmer(c.Request().Context(), c.Param("farmerId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", problems)
}

func (h *ProblemHandler) Update(c echo.Context) error {
	var req problemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	problem, err := h.svc.Update(c.Request().Context(), c.Param("id"), &domain.Problem{
		Issue:       req.Issue,
		Description: req.Description,
		Solved:      req.Solved,
		Image:       req.Image,
		Video:       req.Video,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "problem updated successfully", problem)
}

func (h *ProblemHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "problem deleted successfully", nil)
}
