package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lortega/product-catalog-api/internal/model"
	"github.com/lortega/product-catalog-api/internal/repository"
)

// memProductStore is an in-memory ProductStore for handler tests.
type memProductStore struct {
	mu       sync.Mutex
	products map[string]*model.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[string]*model.Product{}}
}

func (m *memProductStore) Create(_ context.Context, p *model.Product) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.products[p.ID.Hex()] = p
	return p, nil
}

func (m *memProductStore) FindByID(_ context.Context, id string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memProductStore) List(_ context.Context) ([]*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductStore) Update(_ context.Context, id string, fields map[string]interface{}) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "price":
			p.Price = v.(float64)
		case "description":
			p.Description = v.(string)
		case "category":
			p.Category = v.(string)
		case "available":
			p.Available = v.(bool)
		}
	}
	return p, nil
}

func (m *memProductStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func doParam(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, method, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/products/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, handler(c))
	return rec
}

func TestProductCreate_Defaults(t *testing.T) {
	t.Parallel()
	e := newTestEcho()
	store := newMemProductStore()
	h := NewProductHandler("test", store, nil)

	rec := doJSON(t, e, h.Create, http.MethodPost, "/products",
		`{"name":"Keyboard","price":49.9}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "General", data["category"])
	assert.Equal(t, true, data["available"])
}

func TestProductCreate_Validation(t *testing.T) {
	t.Parallel()
	e := newTestEcho()
	h := NewProductHandler("test", newMemProductStore(), nil)

	for name, body := range map[string]string{
		"missing name":   `{"price":10}`,
		"missing price":  `{"name":"Keyboard"}`,
		"zero price":     `{"name":"Keyboard","price":0}`,
		"negative price": `{"name":"Keyboard","price":-5}`,
	} {
		rec := doJSON(t, e, h.Create, http.MethodPost, "/products", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestProductUpdate(t *testing.T) {
	t.Parallel()
	e := newTestEcho()
	store := newMemProductStore()
	h := NewProductHandler("test", store, nil)

	created, err := store.Create(context.Background(), &model.Product{Name: "Keyboard", Price: 49.9})
	require.NoError(t, err)
	id := created.ID.Hex()

	// Partial update touches only the provided fields.
	req := httptest.NewRequest(http.MethodPut, "/products/"+id,
		jsonBody(`{"price":59.9}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 59.9, data["price"])
	assert.Equal(t, "Keyboard", data["name"])

	// Empty patch is rejected.
	req = httptest.NewRequest(http.MethodPut, "/products/"+id, jsonBody(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-positive price is rejected.
	req = httptest.NewRequest(http.MethodPut, "/products/"+id, jsonBody(`{"price":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductUpdate_NotFound(t *testing.T) {
	t.Parallel()
	e := newTestEcho()
	h := NewProductHandler("test", newMemProductStore(), nil)

	id := primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodPut, "/products/"+id, jsonBody(`{"price":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductDelete(t *testing.T) {
	t.Parallel()
	e := newTestEcho()
	store := newMemProductStore()
	h := NewProductHandler("test", store, nil)

	created, err := store.Create(context.Background(), &model.Product{Name: "Keyboard", Price: 49.9})
	require.NoError(t, err)

	rec := doParam(t, e, h.Delete, http.MethodDelete, created.ID.Hex())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doParam(t, e, h.Delete, http.MethodDelete, created.ID.Hex())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductList_Count(t *testing.T) {
	t.Parallel()
	e := newTestEcho()
	store := newMemProductStore()
	h := NewProductHandler("test", store, nil)

	for _, name := range []string{"a", "b", "c"} {
		_, err := store.Create(context.Background(), &model.Product{Name: name, Price: 1})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decodeEnvelope(t, rec)["count"])
}
