package api

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": apiError{
			Type:    errType,
			Message: msg,
		},
	})
}
