package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lortega/product-catalog-api/internal/middleware"
	"github.com/lortega/product-catalog-api/internal/model"
	"github.com/lortega/product-catalog-api/internal/utils"
)

// UserDirectory is the read side of the identity store used by the user
// endpoints.  *repository.UserRepo satisfies it.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// UserHandler serves the profile and admin user endpoints.
type UserHandler struct {
	Env   string
	Users UserDirectory
}

func NewUserHandler(env string, users UserDirectory) *UserHandler {
	return &UserHandler{Env: env, Users: users}
}

// Profile handles GET /users/profile.  It re-reads the caller's record so
// the response reflects the current state, not the claims snapshot.
func (h *UserHandler) Profile(c echo.Context) error {
	claims, ok := c.Get(middleware.ClaimsKey).(*utils.Claims)
	if !ok || claims == nil {
		return respondError(c, http.StatusUnauthorized, "unauthenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.FindByID(ctx, claims.Subject)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	return respondData(c, http.StatusOK, "profile", u.Public())
}

// List handles GET /users (admin only).
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	public := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return respondList(c, "users", public, len(public))
}

// GetByID handles GET /users/:id (admin only).
func (h *UserHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return respondError(c, http.StatusBadRequest, "user id is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.FindByID(ctx, id)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	return respondData(c, http.StatusOK, "user found", u.Public())
}
