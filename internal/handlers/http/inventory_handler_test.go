package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"
	"stockroom/internal/core/services"
	"stockroom/internal/infrastructure/middleware"
	"stockroom/internal/infrastructure/repositories/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInventoryTestRouter(identity *domain.Identity) (*gin.Engine, ports.InventoryService) {
	gin.SetMode(gin.TestMode)

	repo := memory.NewMemoryInventoryRepository()
	svc := services.NewInventoryService(repo, nil, nil, nil, zap.NewNop().Sugar())
	handler := NewInventoryHandler(svc)

	inject := func(c *gin.Context) {
		if identity != nil {
			c.Set(middleware.IdentityKey, identity)
		}
		c.Next()
	}

	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(zap.NewNop().Sugar()))
	router.GET("/items", inject, handler.ListItems)
	router.GET("/dashboard", inject, handler.Dashboard)
	router.POST("/add", inject, handler.AddItem)
	router.POST("/update_quantity/:id", inject, handler.UpdateQuantity)
	router.DELETE("/delete/:id", inject, handler.DeleteItem)
	return router, svc
}

func editorIdentity() *domain.Identity {
	return &domain.Identity{UID: "u1", Email: "u1@example.com", Role: domain.RoleEditor}
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func addTestItem(t *testing.T, router *gin.Engine, name, quantity, price, category string) string {
	t.Helper()
	w := postForm(router, "/add", url.Values{
		"name":     {name},
		"quantity": {quantity},
		"price":    {price},
		"category": {category},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func TestAddItem_AndList(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())

	id := addTestItem(t, router, "Rake", "3", "18.50", "Tools")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/items", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var items map[string]domain.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Contains(t, items, id)
	assert.Equal(t, "Rake", items[id].Name)
	assert.Equal(t, 3, items[id].Quantity)
	assert.Equal(t, domain.UserID("u1"), items[id].OwnerUID)
}

func TestAddItem_LenientCoercionOverHTTP(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())

	id := addTestItem(t, router, "Mystery Box", "many", "cheap", "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/items", nil)
	router.ServeHTTP(w, req)

	var items map[string]domain.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Equal(t, 0, items[id].Quantity)
	assert.Equal(t, 0.0, items[id].Price)
}

func TestAddItem_MissingNameRejected(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())

	w := postForm(router, "/add", url.Values{"quantity": {"1"}, "price": {"2"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestUpdateQuantity_Increase(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())
	id := addTestItem(t, router, "Rake", "3", "18", "Tools")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/update_quantity/"+id, strings.NewReader(`{"action":"increase"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status      string `json:"status"`
		NewQuantity int    `json:"new_quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Quantity updated", body.Status)
	assert.Equal(t, 4, body.NewQuantity)
}

func TestUpdateQuantity_DecreaseAtZero(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())
	id := addTestItem(t, router, "Rake", "0", "18", "Tools")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/update_quantity/"+id, strings.NewReader(`{"action":"decrease"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ACTION")
}

func TestUpdateQuantity_UnknownAction(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())
	id := addTestItem(t, router, "Rake", "5", "18", "Tools")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/update_quantity/"+id, strings.NewReader(`{"action":"reset"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/update_quantity/missing", strings.NewReader(`{"action":"increase"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteItem(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())
	id := addTestItem(t, router, "Rake", "5", "18", "Tools")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/delete/"+id, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting again reports not found.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/delete/"+id, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard_Aggregates(t *testing.T) {
	router, _ := newInventoryTestRouter(editorIdentity())
	addTestItem(t, router, "A", "2", "5", "A")
	addTestItem(t, router, "B", "3", "2", "B")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Aggregates domain.AggregateView `json:"aggregates"`
		User       domain.Identity      `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 16.0, body.Aggregates.TotalValue)
	assert.Equal(t, 5, body.Aggregates.TotalItems)
	assert.Equal(t, 10.0, body.Aggregates.CategoryValues["A"])
	assert.Equal(t, 6.0, body.Aggregates.CategoryValues["B"])
	assert.Equal(t, domain.UserID("u1"), body.User.UID)
}

func TestLanding(t *testing.T) {
	router, _ := newInventoryTestRouter(nil)
	handler := NewInventoryHandler(nil)
	router.GET("/", handler.Landing)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stockroom")
}

func TestLanding_AuthenticatedRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewInventoryHandler(nil)
	router.GET("/", func(c *gin.Context) {
		c.Set(middleware.IdentityKey, editorIdentity())
	}, handler.Landing)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
