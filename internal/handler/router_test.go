package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/RocinRykor/Movie-API/internal/middleware"
	"github.com/RocinRykor/Movie-API/internal/model"
	"github.com/RocinRykor/Movie-API/internal/user"
)

// mockVerifier はmiddleware.TokenVerifierのモック実装。
type mockVerifier struct {
	verifyFn func(tokenString string) (*middleware.TokenClaims, error)
}

func (m *mockVerifier) Verify(tokenString string) (*middleware.TokenClaims, error) {
	return m.verifyFn(tokenString)
}

// mockLoader はmiddleware.UserLoaderのモック実装。
type mockLoader struct {
	loadByIDFn func(ctx context.Context, id string) (*model.UserWithFavorites, error)
}

func (m *mockLoader) LoadByID(ctx context.Context, id string) (*model.UserWithFavorites, error) {
	return m.loadByIDFn(ctx, id)
}

// mockHealthChecker はHealthCheckerのモック実装。
type mockHealthChecker struct {
	pingFn func(ctx context.Context) error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	return m.pingFn(ctx)
}

// newTestRouterDeps はルーティングテスト用の依存一式を組み立てる。
// トークン"valid-token"を受理し、user-1として認証する。
func newTestRouterDeps(t *testing.T) *RouterDeps {
	t.Helper()

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(100),
		GeneralBurst:    100,
		LoginRate:       rate.Limit(100),
		LoginBurst:      100,
		CleanupInterval: time.Minute,
	})
	t.Cleanup(limiter.Stop)

	return &RouterDeps{
		TokenVerifier: &mockVerifier{
			verifyFn: func(tokenString string) (*middleware.TokenClaims, error) {
				if tokenString != "valid-token" {
					return nil, errors.New("signature verification failed")
				}
				return &middleware.TokenClaims{UserID: "user-1", Username: "moviefan"}, nil
			},
		},
		UserLoader: &mockLoader{
			loadByIDFn: func(ctx context.Context, id string) (*model.UserWithFavorites, error) {
				return sampleUserWithFavorites(), nil
			},
		},
		CORSAllowedOrigin: "*",
		RateLimiter:       limiter,
		AuthService: &mockAuthService{
			loginFn: func(ctx context.Context, username, password string) (*model.User, string, error) {
				return &model.User{ID: "user-1", Username: username}, "signed-token", nil
			},
		},
		MovieService: &mockMovieService{
			listMoviesFn: func(ctx context.Context) ([]*model.Movie, error) {
				return []*model.Movie{{ID: "m1", Title: "Inception"}}, nil
			},
		},
		UserService: &mockUserService{
			registerFn: func(ctx context.Context, input user.RegisterInput) (*model.UserWithFavorites, error) {
				return sampleUserWithFavorites(), nil
			},
		},
		ImageService: &mockImageService{},
		HealthChecker: &mockHealthChecker{
			pingFn: func(ctx context.Context) error { return nil },
		},
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := NewRouter(newTestRouterDeps(t))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"index", http.MethodGet, "/", http.StatusOK},
		{"documentation", http.MethodGet, "/documentation", http.StatusOK},
		{"health", http.MethodGet, "/health", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRouter_HealthUnhealthy(t *testing.T) {
	deps := newTestRouterDeps(t)
	deps.HealthChecker = &mockHealthChecker{
		pingFn: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	}
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["status"] != "unhealthy" {
		t.Errorf("expected status unhealthy, got %q", resp["status"])
	}
}

func TestRouter_LoginWithoutToken(t *testing.T) {
	router := NewRouter(newTestRouterDeps(t))

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"moviefan","password":"supersecret123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Errorf("expected signed-token, got %q", resp.Token)
	}
}

func TestRouter_LoginRateLimited(t *testing.T) {
	deps := newTestRouterDeps(t)
	deps.RateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(100),
		GeneralBurst:    100,
		LoginRate:       rate.Limit(0.001),
		LoginBurst:      1,
		CleanupInterval: time.Minute,
	})
	t.Cleanup(deps.RateLimiter.Stop)
	router := NewRouter(deps)

	body := `{"username":"moviefan","password":"supersecret123"}`

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.1:40000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first attempt to pass, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.1:40001"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRouter_RegisterWithoutToken(t *testing.T) {
	router := NewRouter(newTestRouterDeps(t))

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"username":"moviefan","password":"supersecret123","email":"fan@example.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ProtectedRouteRequiresToken(t *testing.T) {
	router := NewRouter(newTestRouterDeps(t))

	paths := []string{"/movies", "/movies/Inception", "/genre/Thriller", "/directors/Nolan", "/users", "/images/m1"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestRouter_ProtectedRouteWithValidToken(t *testing.T) {
	router := NewRouter(newTestRouterDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var movies []movieResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &movies); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Inception" {
		t.Errorf("unexpected movies payload: %+v", movies)
	}
}

func TestRouter_ProtectedRouteRejectsInvalidToken(t *testing.T) {
	router := NewRouter(newTestRouterDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	deps := newTestRouterDeps(t)
	deps.Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "http_request" {
		t.Errorf("msg = %q, want %q", entry["msg"], "http_request")
	}
	if entry["path"] != "/health" {
		t.Errorf("path = %q, want %q", entry["path"], "/health")
	}
	if status, ok := entry["status"].(float64); !ok || status != 200 {
		t.Errorf("status = %v, want 200", entry["status"])
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := NewRouter(newTestRouterDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
}
