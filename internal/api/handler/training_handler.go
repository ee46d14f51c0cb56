package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type TrainingHandler struct {
	svc ports.TrainingService
}

func NewTrainingHandler(svc ports.TrainingService) *TrainingHandler {
	return &TrainingHandler{svc: svc}
}

type trainingRequest struct {
	Subject   string `json:"subject" validate:"required"`
	Attendees int    `json:"attendees" validate:"omitempty,gte=0"`
	CRPID     string `json:"crp_id"`
}

func (h *TrainingHandler) Create(c echo.Context) error {
	var req trainingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	training, err := h.svc.Create(c.Request().Context(), &domain.Training{
		Subject:   req.Subject,
		Attendees: req.Attendees,
		CRPID:     req.CRPID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "training created successfully", training)
}

func (h *TrainingHandler) List(c echo.Context) error {
	trainings, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", trainings)
}

func (h *TrainingHandler) Get(c echo.Context) error {
	training, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", training)
}

func (h *TrainingHandler) Update(c echo.Context) error {
	var req trainingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	training, err := h.svc.Update(c.Request().Context(), c.Param("id"), &domain.Training{
		Subject:   req.Subject,
		Attendees: req.Attendees,
		CRPID:     req.CRPID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "training updated successfully", training)
}

func (h *TrainingHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "training deleted successfully", nil)
}
