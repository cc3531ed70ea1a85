package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lortega/product-catalog-api/internal/model"
	"github.com/lortega/product-catalog-api/internal/utils"
)

// RequireRole returns middleware that admits a request only when the
// authenticated identity carries one of the given roles.  A request with no
// identity in context is rejected with 401; an identity with a role outside
// the allowed set gets 403.  It assumes JWTAuth ran earlier in the chain.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*utils.Claims)
			if !ok || claims == nil {
				return rejectUnauthorized(c, "unauthenticated")
			}
			if !allowed[claims.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success":    false,
					"message":    "forbidden",
					"statusCode": http.StatusForbidden,
				})
			}
			return next(c)
		}
	}
}
