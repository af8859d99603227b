package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"merchant-be/internal/entities"
	"merchant-be/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockAuthService implements service.AuthService for testing
type mockAuthService struct {
	RegisterFunc   func(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	LoginFunc      func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetSessionFunc func(ctx context.Context, token string) (*entities.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	return m.RegisterFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	return m.LoginFunc(ctx, req)
}

func (m *mockAuthService) GetSession(ctx context.Context, token string) (*entities.User, error) {
	return m.GetSessionFunc(ctx, token)
}

func (m *mockAuthService) SessionTTL() time.Duration { return 30 * 24 * time.Hour }

// mockMerchantService implements service.MerchantService for testing
type mockMerchantService struct {
	ListFunc   func(ctx context.Context, q models.ListMerchantsQuery) (*models.MerchantPage, error)
	AddFunc    func(ctx context.Context, req *models.AddMerchantRequest) (*entities.Merchant, error)
	UpdateFunc func(ctx context.Context, id string, req *models.UpdateMerchantRequest) (*entities.Merchant, error)
	DeleteFunc func(ctx context.Context, id string) error
	GetFunc    func(ctx context.Context, id string) (*entities.Merchant, error)
	FilterFunc func(ctx context.Context, filterOption string) ([]*entities.Merchant, error)
}

func (m *mockMerchantService) List(ctx context.Context, q models.ListMerchantsQuery) (*models.MerchantPage, error) {
	return m.ListFunc(ctx, q)
}

func (m *mockMerchantService) Add(ctx context.Context, req *models.AddMerchantRequest) (*entities.Merchant, error) {
	return m.AddFunc(ctx, req)
}

func (m *mockMerchantService) Update(ctx context.Context, id string, req *models.UpdateMerchantRequest) (*entities.Merchant, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockMerchantService) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockMerchantService) Get(ctx context.Context, id string) (*entities.Merchant, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockMerchantService) Filter(ctx context.Context, filterOption string) ([]*entities.Merchant, error) {
	return m.FilterFunc(ctx, filterOption)
}

// doRequest runs one request through a bare engine that has h mounted at method+path
func doRequest(t *testing.T, method, route, target string, body interface{}, h gin.HandlerFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	r := gin.New()
	r.Handle(method, route, h)

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
