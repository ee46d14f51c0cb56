package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldworks/agrifield-api/internal/core/ports"
	"github.com/fieldworks/agrifield-api/internal/core/service"
)

// Enqueuer accepts messages for asynchronous delivery.
type Enqueuer interface {
	EnqueueBatch(msgs []ports.SMSMessage)
}

type SMSHandler struct {
	queue Enqueuer
}

func NewSMSHandler(queue Enqueuer) *SMSHandler {
	return &SMSHandler{queue: queue}
}

type sendSMSRequest struct {
	Numbers []string `json:"numbers" validate:"required,min=1,dive,required"`
	Message string   `json:"message" validate:"required"`
}

type sendSchemesRequest struct {
	Numbers []string `json:"numbers" validate:"required,min=1,dive,required"`
	Schemes []string `json:"schemes" validate:"required,min=1,dive,required"`
}

// Send queues a free-form message to each number. Delivery is asynchronous;
// acceptance is acknowledged immediately.
func (h *SMSHandler) Send(c echo.Context) error {
	var req sendSMSRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msgs := make([]ports.SMSMessage, 0, len(req.Numbers))
	for _, n := range req.Numbers {
		msgs = append(msgs, ports.SMSMessage{Number: n, Message: req.Message})
	}
	h.queue.EnqueueBatch(msgs)

	return respond(c, http.StatusOK, "sms queued for delivery", map[string]int{"queued": len(msgs)})
}

// SendSchemes queues a formatted government schemes notification.
func (h *SMSHandler) SendSchemes(c echo.Context) error {
	var req sendSchemesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message := service.SchemesMessage(req.Schemes)
	msgs := make([]ports.SMSMessage, 0, len(req.Numbers))
	for _, n := range req.Numbers {
		msgs = append(msgs, ports.SMSMessage{Number: n, Message: message})
	}
	h.queue.EnqueueBatch(msgs)

	return respond(c, http.StatusOK, "scheme notifications queued for delivery", map[string]int{"queued": len(msgs)})
}
