package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/lortega/product-catalog-api/internal/handler"
	"github.com/lortega/product-catalog-api/internal/middleware"
	"github.com/lortega/product-catalog-api/internal/model"
)

// Register wires every route of the API onto the Echo instance.  The
// resolver backs the JWT middleware; limit is the token bucket applied to
// the credential endpoints (pass a pass-through middleware to disable it).
//
// Role sets per route:
//
//	/users, /users/:id            admin
//	POST /products, PUT /products admin, editor
//	DELETE /products/:id          admin
func Register(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, p *handler.ProductHandler, resolver middleware.TokenResolver, limit echo.MiddlewareFunc) {
	e.GET("/", handler.Index)
	e.GET("/healthz", handler.Health)
	e.RouteNotFound("/*", handler.NotFound)

	authed := middleware.JWTAuth(resolver)

	e.POST("/auth/login", a.Login, limit)

	users := e.Group("/users")
	users.POST("/register", a.Register, limit)
	users.GET("/profile", u.Profile, authed)
	users.GET("", u.List, authed, middleware.RequireRole(model.RoleAdmin))
	users.GET("/:id", u.GetByID, authed, middleware.RequireRole(model.RoleAdmin))

	products := e.Group("/products")
	products.GET("", p.List)
	products.GET("/:id", p.GetByID)
	products.POST("", p.Create, authed, middleware.RequireRole(model.RoleAdmin, model.RoleEditor))
	products.PUT("/:id", p.Update, authed, middleware.RequireRole(model.RoleAdmin, model.RoleEditor))
	products.DELETE("/:id", p.Delete, authed, middleware.RequireRole(model.RoleAdmin))
}
