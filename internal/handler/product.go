package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lortega/product-catalog-api/internal/middleware"
	"github.com/lortega/product-catalog-api/internal/model"
	"github.com/lortega/product-catalog-api/internal/queue"
)

// ProductStore is the persistence surface the product endpoints need.
// *repository.ProductRepo satisfies it.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductHandler serves the product CRUD endpoints.  Reads are public;
// mutations sit behind the role gate configured in the router.
type ProductHandler struct {
	Env      string
	Products ProductStore
	Audit    AuditPublisher
}

func NewProductHandler(env string, products ProductStore, audit AuditPublisher) *ProductHandler {
	return &ProductHandler{Env: env, Products: products, Audit: audit}
}

type createProductReq struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Available   *bool   `json:"available"`
}

type updateProductReq struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Available   *bool    `json:"available"`
}

// List handles GET /products.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	products, err := h.Products.List(ctx)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	if products == nil {
		products = []*model.Product{}
	}
	return respondList(c, "products", products, len(products))
}

// GetByID handles GET /products/:id.
func (h *ProductHandler) GetByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Products.FindByID(ctx, c.Param("id"))
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	return respondData(c, http.StatusOK, "product found", p)
}

// Create handles POST /products (roles: admin, editor).
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "name is required and price must be greater than 0")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "General"
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	now := time.Now().UTC()
	p := &model.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Available:   available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	created, err := h.Products.Create(ctx, p)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	h.publishAudit(c, queue.ActionProductCreated, created.ID.Hex())
	return respondData(c, http.StatusCreated, "product created", created)
}

// Update handles PUT /products/:id (roles: admin, editor).  Only the fields
// present in the body are touched.
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return respondError(c, http.StatusBadRequest, "name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return respondError(c, http.StatusBadRequest, "price must be greater than 0")
		}
		fields["price"] = *req.Price
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Available != nil {
		fields["available"] = *req.Available
	}
	if len(fields) == 0 {
		return respondError(c, http.StatusBadRequest, "provide at least one field to update")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	updated, err := h.Products.Update(ctx, c.Param("id"), fields)
	if err != nil {
		return respondServiceError(c, h.Env, err)
	}
	h.publishAudit(c, queue.ActionProductUpdated, updated.ID.Hex())
	return respondData(c, http.StatusOK, "product updated", updated)
}

// Delete handles DELETE /products/:id (role: admin).
func (h *ProductHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Products.Delete(ctx, id); err != nil {
		return respondServiceError(c, h.Env, err)
	}
	h.publishAudit(c, queue.ActionProductDeleted, id)
	return respondData(c, http.StatusOK, "product deleted", nil)
}

func (h *ProductHandler) publishAudit(c echo.Context, action, entityID string) {
	if h.Audit == nil {
		return
	}
	actor, _ := c.Get(middleware.UserIDKey).(string)
	_ = h.Audit.Publish(c.Request().Context(), queue.AuditEvent{
		Action:   action,
		Entity:   "product",
		EntityID: entityID,
		ActorID:  actor,
		At:       time.Now().UTC(),
	})
}
