package middleware // package middleware contains reusable HTTP middleware functions

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lortega/product-catalog-api/internal/utils"
)

// Context keys under which JWTAuth stores the verified identity.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// TokenResolver verifies a serialized token and confirms its subject is
// still an active account.  *service.AuthService satisfies it.
type TokenResolver interface {
	ResolveAndVerify(ctx context.Context, raw string) (*utils.Claims, error)
}

// JWTAuth returns middleware that authenticates requests via a Bearer access
// token.  On success the decoded claims are attached to the request context;
// every failure terminates the request with 401.  A missing header, a header
// that is not in "Bearer <token>" shape and a token that fails verification
// are all terminal, there is no retry path.
func JWTAuth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return rejectUnauthorized(c, "missing bearer token")
			}
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				return rejectUnauthorized(c, "malformed authorization header")
			}

			claims, err := resolver.ResolveAndVerify(c.Request().Context(), parts[1])
			if err != nil {
				return rejectUnauthorized(c, "invalid or expired token")
			}

			// Handlers and the role gate read the identity from these keys.
			// The claims live only as long as this request.
			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.Subject)
			c.Set(RoleKey, claims.Role)
			return next(c)
		}
	}
}

func rejectUnauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success":    false,
		"message":    message,
		"statusCode": http.StatusUnauthorized,
	})
}
