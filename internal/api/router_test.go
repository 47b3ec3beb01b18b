package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mileage-cart/config"
	"github.com/d60-Lab/mileage-cart/internal/api/handler"
	"github.com/d60-Lab/mileage-cart/internal/cache"
	"github.com/d60-Lab/mileage-cart/internal/model"
	"github.com/d60-Lab/mileage-cart/internal/repository"
	"github.com/d60-Lab/mileage-cart/internal/service"
	"github.com/d60-Lab/mileage-cart/pkg/database"
)

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type cartData struct {
	CartItems []struct {
		ID             int64  `json:"id"`
		PostID         int64  `json:"postId"`
		IsActive       bool   `json:"isActive"`
		AuthorNickname string `json:"authorNickname"`
		PostMileage    int64  `json:"postMileage"`
	} `json:"cartItems"`
	TotalMileage int64 `json:"totalMileage"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080, Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent", AutoMigrate: true},
	}
	db, err := database.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.Create(&[]model.User{
		{ID: 1, Nickname: "buyer", Major: "CS", Email: "buyer@example.com", Password: "p"},
		{ID: 2, Nickname: "seller", Major: "Design", Email: "seller@example.com", Password: "p"},
	}).Error)
	require.NoError(t, db.Create(&model.SubCategory{ID: 1, Name: "books"}).Error)
	require.NoError(t, db.Create(&model.Post{ID: 10, AuthorID: 2, SubCategoryID: 1, Title: "algorithms", PostMileage: 50}).Error)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := service.NewCartService(
		repository.NewCartRepository(db),
		repository.NewPostRepository(db),
		repository.NewTradeRepository(db),
		cache.NewRedisCartTotalCache(rdb, time.Minute),
	)
	h := handler.NewHandler(svc,
		handler.HealthCheck{Name: "database", Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		handler.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	return NewRouter(cfg, h)
}

func call(t *testing.T, srv http.Handler, method, url string) (int, apiResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(method, url, nil))
	var body apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func getCart(t *testing.T, srv http.Handler, userID int64) cartData {
	t.Helper()
	code, body := call(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/carts?userId=%d", userID))
	require.Equal(t, http.StatusOK, code)
	var data cartData
	require.NoError(t, json.Unmarshal(body.Data, &data))
	return data
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	cart := getCart(t, srv, 1)
	assert.Empty(t, cart.CartItems)
	assert.Zero(t, cart.TotalMileage)

	code, body := call(t, srv, http.MethodPost, "/api/v1/carts?userId=1&postId=10")
	require.Equal(t, http.StatusCreated, code)
	var entry model.CartEntry
	require.NoError(t, json.Unmarshal(body.Data, &entry))

	cart = getCart(t, srv, 1)
	require.Len(t, cart.CartItems, 1)
	assert.True(t, cart.CartItems[0].IsActive)
	assert.Equal(t, "seller", cart.CartItems[0].AuthorNickname)
	assert.Equal(t, int64(50), cart.TotalMileage)

	code, _ = call(t, srv, http.MethodPost, "/api/v1/carts?userId=1&postId=10")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, srv, http.MethodPost, "/api/v1/carts?userId=2&postId=10")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, srv, http.MethodPost, "/api/v1/carts?userId=1&postId=99")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, srv, http.MethodPatch, fmt.Sprintf("/api/v1/carts/items/%d/active?userId=2", entry.ID))
	assert.Equal(t, http.StatusForbidden, code)

	code, body = call(t, srv, http.MethodPatch, fmt.Sprintf("/api/v1/carts/items/%d/active?userId=1", entry.ID))
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, fmt.Sprintf(`{"itemId":%d,"isActive":false,"totalMileage":0}`, entry.ID), string(body.Data))

	cart = getCart(t, srv, 1)
	require.Len(t, cart.CartItems, 1)
	assert.False(t, cart.CartItems[0].IsActive)
	assert.Zero(t, cart.TotalMileage)

	code, body = call(t, srv, http.MethodGet, "/api/v1/carts/total?userId=1")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"totalMileage":0}`, string(body.Data))

	code, _ = call(t, srv, http.MethodDelete, "/api/v1/carts/active?userId=1")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, srv, http.MethodDelete, "/api/v1/carts?userId=1")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, getCart(t, srv, 1).CartItems)

	code, _ = call(t, srv, http.MethodDelete, "/api/v1/carts?userId=1")
	assert.Equal(t, http.StatusOK, code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	code, body := call(t, srv, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body.Message)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/carts?userId=1", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
