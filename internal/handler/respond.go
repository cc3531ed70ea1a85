package handler // handler package contains the HTTP endpoints of the catalog API

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lortega/product-catalog-api/internal/repository"
	"github.com/lortega/product-catalog-api/internal/service"
	"github.com/lortega/product-catalog-api/internal/utils"
)

// All responses share the same envelope: {success, message, data?, count?}
// on success and {success:false, message, statusCode} on failure.

func respondData(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondList(c echo.Context, message string, data interface{}, count int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"data":    data,
		"count":   count,
	})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success":    false,
		"message":    message,
		"statusCode": status,
	})
}

// respondServiceError maps a typed failure from the service or repository
// layer to an HTTP status and a stable client-facing message.  The mapping
// switches on error identity, never on message content.  Unexpected errors
// become 500; their detail is exposed only in dev mode.
func respondServiceError(c echo.Context, env string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrAccountDisabled):
		return respondError(c, http.StatusUnauthorized, "account disabled")
	case errors.Is(err, service.ErrSecretTooShort):
		return respondError(c, http.StatusBadRequest, service.ErrSecretTooShort.Error())
	case errors.Is(err, utils.ErrInvalidToken):
		return respondError(c, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, repository.ErrEmailExists):
		return respondError(c, http.StatusConflict, "email already registered")
	case errors.Is(err, repository.ErrNotFound):
		return respondError(c, http.StatusNotFound, "not found")
	}
	if env == "dev" {
		return respondError(c, http.StatusInternalServerError, "internal server error: "+err.Error())
	}
	return respondError(c, http.StatusInternalServerError, "internal server error")
}
