package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a plain health check for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Index handles GET / and describes the API surface.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product catalog API with authentication",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"auth":     "/auth",
			"users":    "/users",
			"products": "/products",
		},
	})
}

// NotFound is installed as the catch-all route so unknown paths get the
// same response envelope as everything else.
func NotFound(c echo.Context) error {
	return respondError(c, http.StatusNotFound, "route not found: "+c.Request().URL.Path)
}
