package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/xypherlux/storefront-backend/internal/auth"
	"github.com/xypherlux/storefront-backend/internal/cart"
	"github.com/xypherlux/storefront-backend/internal/catalog"
	checkoutsvc "github.com/xypherlux/storefront-backend/internal/checkout"
	"github.com/xypherlux/storefront-backend/internal/orders"
	pkgauth "github.com/xypherlux/storefront-backend/pkg/auth"
	"github.com/xypherlux/storefront-backend/pkg/auth/session"
	"github.com/xypherlux/storefront-backend/pkg/config"
	"github.com/xypherlux/storefront-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct {
	allowed bool
}

func (s stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.allowed, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.RefreshResponse, error) {
	return &authsvc.RefreshResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubAuthService) RequestPasswordReset(ctx context.Context, req authsvc.ResetRequest) (*authsvc.ResetRequestResponse, error) {
	return &authsvc.ResetRequestResponse{Message: "sent"}, nil
}

func (stubAuthService) VerifyResetCode(ctx context.Context, req authsvc.VerifyCodeRequest) (*authsvc.VerifyCodeResponse, error) {
	return &authsvc.VerifyCodeResponse{ResetToken: "token"}, nil
}

func (stubAuthService) SetNewPassword(ctx context.Context, req authsvc.SetPasswordRequest) (*authsvc.SetPasswordResponse, error) {
	return &authsvc.SetPasswordResponse{Message: "updated"}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListCategories(ctx context.Context) ([]catalog.CategoryDTO, error) {
	return []catalog.CategoryDTO{{Name: "Outerwear", Slug: "outerwear"}}, nil
}

func (stubCatalogService) ListProducts(ctx context.Context, categorySlug string) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{}, nil
}

func (stubCatalogService) ListFeatured(ctx context.Context) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{}, nil
}

func (stubCatalogService) GetProduct(ctx context.Context, slug string) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{Slug: slug}, nil
}

type stubCartService struct{}

func (stubCartService) View(ctx context.Context, userID uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{Items: []cart.CartItemDTO{}}, nil
}

func (stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cart.AddItemInput) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) Clear(ctx context.Context, userID uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, input checkoutsvc.PlaceOrderInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{OrderNumber: "LUX-00000001"}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) List(ctx context.Context, userID uuid.UUID) ([]orders.OrderDTO, error) {
	return []orders.OrderDTO{}, nil
}

func (stubOrdersService) Get(ctx context.Context, userID, orderID uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: orderID}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, sessions stubSessionChecker) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		Redis:           nil,
		SessionChecker:  sessions,
		AuthService:     stubAuthService{},
		CatalogService:  stubCatalogService{},
		CartService:     stubCartService{},
		CheckoutService: stubCheckoutService{},
		OrdersService:   stubOrdersService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "buyer@example.com",
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionChecker{allowed: true})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestCatalogRoutesArePublic(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionChecker{allowed: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public categories got %d", resp.Code)
	}

	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0]["slug"] != "outerwear" {
		t.Fatalf("unexpected payload %v", payload.Data)
	}
}

func TestCartRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionChecker{allowed: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestCartSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionChecker{allowed: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed cart got %d", resp.Code)
	}
}

func TestRevokedSessionRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionChecker{allowed: false})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
}

func TestCheckoutRequiresAuth(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionChecker{allowed: true})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous checkout got %d", resp.Code)
	}
}
