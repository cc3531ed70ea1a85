package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lortega/product-catalog-api/internal/queue"
	"github.com/lortega/product-catalog-api/internal/service"
)

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// AuditPublisher publishes audit events for state-changing operations.
// A nil publisher disables auditing; publish errors never fail a request.
type AuditPublisher interface {
	Publish(ctx context.Context, ev queue.AuditEvent) error
}

// AuthHandler bundles dependencies for the login and registration endpoints.
type AuthHandler struct {
	Env   string
	Auth  *service.AuthService
	Audit AuditPublisher
}

func NewAuthHandler(env string, auth *service.AuthService, audit AuditPublisher) *AuthHandler {
	return &AuthHandler{Env: env, Auth: auth, Audit: audit}
}

type registerReq struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"secret" validate:"required,min=6"`
}

type loginReq struct {
	Email  string `json:"email" validate:"required"`
	Secret string `json:"secret" validate:"required"`
}

type loginResp struct {
	User      interface{} `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"` // seconds
}

// Register handles POST /users/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "name, a valid email and a secret of at least 6 characters are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Auth.Register(ctx, req.Name, req.Email, req.Secret)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}

	if h.Audit != nil {
		_ = h.Audit.Publish(ctx, queue.AuditEvent{
			Action:   queue.ActionUserRegistered,
			Entity:   "user",
			EntityID: user.ID,
			At:       time.Now().UTC(),
		})
	}
	return respondData(c, http.StatusCreated, "user created", user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "email and secret are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, token, ttl, err := h.Auth.Authenticate(ctx, req.Email, req.Secret)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	return respondData(c, http.StatusOK, "authenticated", loginResp{
		User:      user,
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	})
}
