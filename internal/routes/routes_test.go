package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storage"
	"github.com/01moynul/storefront-golang/internal/storefront"
)

type memCatalog []models.Product

func (m memCatalog) Product(ctx context.Context, id int64) (models.Product, error) {
	for _, p := range m {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, &models.NotFoundError{Resource: "product", ID: id}
}

func (m memCatalog) Search(ctx context.Context, q string) ([]models.Product, error) {
	return catalog.Filter(m, "", q), nil
}

func (m memCatalog) List(ctx context.Context, limit int) ([]models.Product, error) {
	return m, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := memCatalog{
		{ID: 1, Title: "Mascara", Category: "beauty", Price: decimal.NewFromInt(10), Rating: 4.5},
		{ID: 2, Title: "Lipstick", Category: "beauty", Price: decimal.NewFromInt(5), Rating: 3.9},
		{ID: 3, Title: "Sofa", Category: "furniture", Price: decimal.NewFromInt(300), Rating: 4.8},
	}
	app := storefront.New(context.Background(), storage.NewMemoryKV(), products,
		auth.NewTokens("test-secret", time.Hour), storefront.Options{BcryptCost: 4}, zap.NewNop())
	h := &handlers.Handlers{App: app, Logger: zap.NewNop()}
	return SetupRouter(h, "http://localhost:5173", zap.NewNop())
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/v1/register", "", gin.H{
		"firstName": "Ada", "lastName": "Lovelace",
		"email": "a@b.com", "password": "abcdef", "confirmPassword": "abcdef",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/v1/login", "", gin.H{"email": "a@b.com", "password": "abcdef"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodOptions, "/v1/cart/items", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/v1/register", "", gin.H{
		"email": "a@b.com", "password": "abc", "confirmPassword": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at least 6 characters long", decode(t, w)["error"])
}

func TestLoginFailure(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/v1/login", "", gin.H{"email": "x@y.com", "password": "abcdef"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["error"])
}

func TestCartFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/v1/cart/items", "", gin.H{"product_id": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "anonymous add")

	token := login(t, r)
	for _, id := range []int{1, 1, 2} {
		w = do(t, r, http.MethodPost, "/v1/cart/items", token, gin.H{"product_id": id})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/v1/cart/count", "", nil)
	assert.Equal(t, float64(3), decode(t, w)["count"])

	w = do(t, r, http.MethodGet, "/v1/cart?shipping=express", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)
	assert.Equal(t, "25", view["subtotal"])
	assert.Equal(t, "35", view["total"])

	w = do(t, r, http.MethodPut, "/v1/cart/items/2", "", gin.H{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(6), decode(t, w)["totalItems"])

	w = do(t, r, http.MethodDelete, "/v1/cart/items/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decode(t, w)["totalItems"])

	w = do(t, r, http.MethodPost, "/v1/cart/checkout", "", gin.H{"shipping": "standard", "address": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in your address!", decode(t, w)["error"])

	w = do(t, r, http.MethodPost, "/v1/cart/checkout", "", gin.H{"shipping": "standard", "address": "1 Main St"})
	require.Equal(t, http.StatusOK, w.Code)
	receipt := decode(t, w)["receipt"].(map[string]any)
	assert.Equal(t, "25", receipt["total"])

	w = do(t, r, http.MethodPost, "/v1/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/v1/cart/count", "", nil)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	w = do(t, r, http.MethodPost, "/v1/cart/items", token, gin.H{"product_id": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token revoked by logout")
}

func TestAddToCartBadInput(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := do(t, r, http.MethodPost, "/v1/cart/items", token, gin.H{"product_id": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/v1/cart/items", "garbage", gin.H{"product_id": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/v1/products?category=beauty", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["total"])

	w = do(t, r, http.MethodGet, "/v1/products?page=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/v1/products/categories", "", nil)
	assert.Equal(t, []any{"All", "beauty", "furniture"}, decode(t, w)["categories"])

	w = do(t, r, http.MethodGet, "/v1/products/search?q=sofa", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["products"], 1)

	w = do(t, r, http.MethodGet, "/v1/products/top-rated", "", nil)
	top := decode(t, w)["products"].([]any)
	assert.Equal(t, float64(3), top[0].(map[string]any)["id"])

	w = do(t, r, http.MethodGet, "/v1/products/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/v1/products/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/v1/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/v1/products/1/similar", "", nil)
	assert.Len(t, decode(t, w)["products"], 1)
}

func TestCommentRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/v1/products/1/comments", "", gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Comment cannot be empty", decode(t, w)["error"])

	w = do(t, r, http.MethodPost, "/v1/products/1/comments", "", gin.H{"text": "lovely"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/v1/products/1/comments", "", nil)
	assert.Equal(t, []any{"lovely"}, decode(t, w)["comments"])

	w = do(t, r, http.MethodDelete, "/v1/products/1/comments/0", "", nil)
	assert.Equal(t, []any{}, decode(t, w)["comments"])
}
