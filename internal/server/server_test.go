package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventoryManagement/internal/auth"
	"inventoryManagement/internal/config"
	"inventoryManagement/internal/server"
	"inventoryManagement/internal/testutil"
	"inventoryManagement/models"
	"inventoryManagement/repository"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, name string) (*server.Server, *repository.ProductRepository, *repository.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	d := testutil.OpenInMemoryDB(t, name)
	products := repository.NewProductRepository(d, t.TempDir())
	users := repository.NewUserRepository(d)
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testSecret
	cfg.Storage.AssetsDir = t.TempDir()
	cfg.Storage.DataDir = t.TempDir()
	return server.New(cfg, products, users), products, users
}

func doJSON(t *testing.T, srv *server.Server, method, path, token string, body any) *httptest.ResponseRecorder {
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
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	srv, _, users := newTestServer(t, "srvlogin")
	_, err := users.Create(context.Background(), "alice", auth.HashPassword("wonder"), models.RoleAdmin)
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "wonder"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "admin", resp["role"])

	w = doJSON(t, srv, http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/login", "", gin.H{"username": "ghost", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductEndpointsAndRoleGates(t *testing.T) {
	srv, products, _ := newTestServer(t, "srvproducts")
	adminTok := testutil.GenerateJWTHS256(t, testSecret, "root", models.RoleAdmin)
	staffTok := testutil.GenerateJWTHS256(t, testSecret, "clerk", models.RoleStaff)

	// Unauthenticated requests are rejected.
	w := doJSON(t, srv, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Staff may create products.
	w = doJSON(t, srv, http.MethodPost, "/api/products", staffTok, gin.H{
		"name": "Lip Gloss", "price": 19.9, "quantity": 10,
		"brand": "eudora", "style": "make", "type": "boca",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Eudora", created.Brand)

	// Vocabulary gate at input time.
	w = doJSON(t, srv, http.MethodPost, "/api/products", staffTok, gin.H{
		"name": "Widget", "price": 1, "quantity": 1,
		"brand": "acme", "style": "make", "type": "boca",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Staff may sell.
	w = doJSON(t, srv, http.MethodPost, "/api/products/1/sell", staffTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p, err := products.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, p.Quantity)
	assert.True(t, p.Sold)

	// Staff may not delete; admin may.
	w = doJSON(t, srv, http.MethodDelete, "/api/products/1", staffTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, srv, http.MethodDelete, "/api/products/1", adminTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Selling a missing product is a 404.
	w = doJSON(t, srv, http.MethodPost, "/api/products/1/sell", staffTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSellInsufficientStock(t *testing.T) {
	srv, products, _ := newTestServer(t, "srvsell")
	staffTok := testutil.GenerateJWTHS256(t, testSecret, "clerk", models.RoleStaff)
	testutil.SeedProduct(t, products, "Gloss", 19.9, 1)

	w := doJSON(t, srv, http.MethodPost, "/api/products/1/sell", staffTok, gin.H{"units": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/products/1/sell", staffTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	srv, _, _ := newTestServer(t, "srvusers")
	adminTok := testutil.GenerateJWTHS256(t, testSecret, "root", models.RoleAdmin)
	staffTok := testutil.GenerateJWTHS256(t, testSecret, "clerk", models.RoleStaff)

	w := doJSON(t, srv, http.MethodPost, "/api/users", staffTok, gin.H{
		"username": "bob", "password": "pw", "confirm": "pw", "role": "staff",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/users", adminTok, gin.H{
		"username": "bob", "password": "pw", "confirm": "pw", "role": "staff",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Mismatched confirmation.
	w = doJSON(t, srv, http.MethodPost, "/api/users", adminTok, gin.H{
		"username": "carol", "password": "pw", "confirm": "other", "role": "staff",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate username.
	w = doJSON(t, srv, http.MethodPost, "/api/users", adminTok, gin.H{
		"username": "bob", "password": "pw", "confirm": "pw", "role": "staff",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/users", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestChatEndpointKeepsPerUserSessions(t *testing.T) {
	srv, _, _ := newTestServer(t, "srvchat")
	aliceTok := testutil.GenerateJWTHS256(t, testSecret, "alice", models.RoleStaff)
	bobTok := testutil.GenerateJWTHS256(t, testSecret, "bob", models.RoleStaff)

	// Alice starts an add flow; Bob's session stays idle.
	w := doJSON(t, srv, http.MethodPost, "/api/chat", aliceTok, gin.H{"message": "add product"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["reply"], "What is its name?")

	w = doJSON(t, srv, http.MethodPost, "/api/chat", bobTok, gin.H{"message": "cancel"})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["reply"], "no operation in progress")

	// Alice's flow advanced independently.
	w = doJSON(t, srv, http.MethodPost, "/api/chat", aliceTok, gin.H{"message": "Gloss"})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["reply"], "price")
}
