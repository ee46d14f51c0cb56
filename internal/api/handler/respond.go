package handler

import (
	"github.com/labstack/echo/v4"
)

// response is the success envelope shared by every endpoint. Errors are
// rendered by the central error handler with the matching failure shape.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, response{Success: true, Message: message, Data: data})
}
