package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mileage-cart/internal/model"
	"github.com/d60-Lab/mileage-cart/internal/service"
	"github.com/d60-Lab/mileage-cart/pkg/response"
)

// MockCartService is a mock implementation of CartService
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID int64) (*service.CartSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartSummary), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID, postID int64) (*model.CartEntry, error) {
	args := m.Called(userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartEntry), args.Error(1)
}

func (m *MockCartService) DeleteActiveItems(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartService) ToggleActive(ctx context.Context, itemID, userID int64) (*service.ToggleResult, error) {
	args := m.Called(itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ToggleResult), args.Error(1)
}

func (m *MockCartService) TotalMileage(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func setupRouter(svc service.CartService, checks ...HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, checks...)
	r := gin.New()
	r.GET("/health", h.Health)
	carts := r.Group("/api/v1/carts")
	carts.GET("", h.GetCartItems)
	carts.POST("", h.AddCartItem)
	carts.DELETE("", h.ClearCart)
	carts.DELETE("/active", h.DeleteActiveItems)
	carts.GET("/total", h.GetTotalMileage)
	carts.PATCH("/items/active", h.ToggleActive)
	carts.PATCH("/items/:itemId/active", h.ToggleActive)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, url string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, url, nil))
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestGetCartItems_Success(t *testing.T) {
	svc := new(MockCartService)
	svc.On("GetCart", int64(1)).Return(&service.CartSummary{
		CartItems: []*model.CartItemView{
			{ID: 3, PostID: 10, IsActive: true, Title: "algorithms", PostMileage: 50},
			{ID: 4, PostID: 11, IsActive: false, Title: "calculus", PostMileage: 30},
		},
		TotalMileage: 50,
	}, nil)

	w, body := do(t, setupRouter(svc), http.MethodGet, "/api/v1/carts?userId=1")
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		CartItems []struct {
			ID       int64 `json:"id"`
			IsActive bool  `json:"isActive"`
		} `json:"cartItems"`
		TotalMileage int64 `json:"totalMileage"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Len(t, data.CartItems, 2)
	assert.False(t, data.CartItems[1].IsActive)
	assert.Equal(t, int64(50), data.TotalMileage)
	svc.AssertExpectations(t)
}

func TestGetCartItems_InvalidUserID(t *testing.T) {
	for _, url := range []string{
		"/api/v1/carts",
		"/api/v1/carts?userId=",
		"/api/v1/carts?userId=abc",
		"/api/v1/carts?userId=1.5",
		"/api/v1/carts?userId=-1",
		"/api/v1/carts?userId=99999999999999999999",
	} {
		t.Run(url, func(t *testing.T) {
			svc := new(MockCartService)
			w, body := do(t, setupRouter(svc), http.MethodGet, url)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, response.CodeBadRequest, body.Code)
			assert.Contains(t, body.Message, "userId")
			svc.AssertNotCalled(t, "GetCart", mock.Anything)
		})
	}
}

func TestGetCartItems_StoreError(t *testing.T) {
	svc := new(MockCartService)
	svc.On("GetCart", int64(1)).Return(nil, errors.New("db down"))

	w, body := do(t, setupRouter(svc), http.MethodGet, "/api/v1/carts?userId=1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body.Message)
}

func TestAddCartItem(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"created", nil, http.StatusCreated},
		{"self purchase", service.ErrSelfPurchase, http.StatusBadRequest},
		{"duplicate", service.ErrDuplicateItem, http.StatusBadRequest},
		{"already purchased", service.ErrAlreadyPurchased, http.StatusBadRequest},
		{"post not found", service.ErrPostNotFound, http.StatusNotFound},
		{"store error", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCartService)
			if tt.err == nil {
				svc.On("AddItem", int64(1), int64(10)).Return(&model.CartEntry{ID: 7, UserID: 1, PostID: 10, IsActive: true, Quantity: 1}, nil)
			} else {
				svc.On("AddItem", int64(1), int64(10)).Return(nil, tt.err)
			}

			w, _ := do(t, setupRouter(svc), http.MethodPost, "/api/v1/carts?userId=1&postId=10")
			assert.Equal(t, tt.status, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAddCartItem_InvalidPostID(t *testing.T) {
	svc := new(MockCartService)
	w, body := do(t, setupRouter(svc), http.MethodPost, "/api/v1/carts?userId=1&postId=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body.Message, "postId")
	svc.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestDeleteActiveItems(t *testing.T) {
	svc := new(MockCartService)
	svc.On("DeleteActiveItems", int64(1)).Return(int64(2), nil)
	svc.On("DeleteActiveItems", int64(2)).Return(int64(0), service.ErrNoActiveItems)
	r := setupRouter(svc)

	w, _ := do(t, r, http.MethodDelete, "/api/v1/carts/active?userId=1")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/carts/active?userId=2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/carts/active?userId=two")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearCart_AlwaysOK(t *testing.T) {
	svc := new(MockCartService)
	svc.On("ClearCart", int64(1)).Return(int64(0), nil)

	w, body := do(t, setupRouter(svc), http.MethodDelete, "/api/v1/carts?userId=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":0}`, string(body.Data))
}

func TestToggleActive(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		result *service.ToggleResult
		err    error
		status int
		msg    string
	}{
		{"deactivate via path", "/api/v1/carts/items/3/active?userId=1", &service.ToggleResult{ItemID: 3, IsActive: false, TotalMileage: 0}, nil, http.StatusOK, "cart item deactivated"},
		{"activate via query", "/api/v1/carts/items/active?itemId=3&userId=1", &service.ToggleResult{ItemID: 3, IsActive: true, TotalMileage: 50}, nil, http.StatusOK, "cart item activated"},
		{"not owner", "/api/v1/carts/items/3/active?userId=1", nil, service.ErrNotOwner, http.StatusForbidden, service.ErrNotOwner.Error()},
		{"not found", "/api/v1/carts/items/3/active?userId=1", nil, service.ErrCartItemNotFound, http.StatusNotFound, service.ErrCartItemNotFound.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCartService)
			if tt.err == nil {
				svc.On("ToggleActive", int64(3), int64(1)).Return(tt.result, nil)
			} else {
				svc.On("ToggleActive", int64(3), int64(1)).Return(nil, tt.err)
			}

			w, body := do(t, setupRouter(svc), http.MethodPatch, tt.url)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, body.Message)
			if tt.result != nil {
				var data service.ToggleResult
				require.NoError(t, json.Unmarshal(body.Data, &data))
				assert.Equal(t, *tt.result, data)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestToggleActive_InvalidIDs(t *testing.T) {
	svc := new(MockCartService)
	r := setupRouter(svc)

	w, body := do(t, r, http.MethodPatch, "/api/v1/carts/items/abc/active?userId=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body.Message, "itemId")

	w, _ = do(t, r, http.MethodPatch, "/api/v1/carts/items/3/active")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPatch, "/api/v1/carts/items/active?userId=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "ToggleActive", mock.Anything, mock.Anything)
}

func TestGetTotalMileage(t *testing.T) {
	svc := new(MockCartService)
	svc.On("TotalMileage", int64(1)).Return(int64(80), nil)

	w, body := do(t, setupRouter(svc), http.MethodGet, "/api/v1/carts/total?userId=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalMileage":80}`, string(body.Data))
}

func TestHealth(t *testing.T) {
	ok := HealthCheck{Name: "database", Ping: func(context.Context) error { return nil }}
	down := HealthCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: refused") }}

	w, _ := do(t, setupRouter(new(MockCartService), ok), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := do(t, setupRouter(new(MockCartService), ok, down), http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"database":"ok","redis":"dial tcp: refused"}`, string(body.Data))
}
