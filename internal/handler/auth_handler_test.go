package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	loginFn func(ctx context.Context, username, password string) (*model.User, string, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	return m.loginFn(ctx, username, password)
}

// mockLoginRecorder はLoginRecorderのモック実装。
type mockLoginRecorder struct {
	successes int
	failures  int
}

func (m *mockLoginRecorder) RecordLoginSuccess() { m.successes++ }
func (m *mockLoginRecorder) RecordLoginFailure() { m.failures++ }

func TestLogin_Success(t *testing.T) {
	service := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*model.User, string, error) {
			if username != "moviefan" || password != "supersecret123" {
				t.Errorf("unexpected credentials: %s / %s", username, password)
			}
			return &model.User{
				ID:           "user-1",
				Username:     "moviefan",
				PasswordHash: "must-not-leak",
				Email:        "fan@example.com",
			}, "signed-token", nil
		},
	}
	recorder := &mockLoginRecorder{}
	h := NewAuthHandler(service, recorder)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"moviefan","password":"supersecret123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

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
	if resp.User.Username != "moviefan" {
		t.Errorf("expected username moviefan, got %q", resp.User.Username)
	}
	if strings.Contains(rec.Body.String(), "must-not-leak") {
		t.Error("password hash leaked into response body")
	}
	if recorder.successes != 1 || recorder.failures != 0 {
		t.Errorf("expected 1 success / 0 failures, got %d / %d", recorder.successes, recorder.failures)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	service := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*model.User, string, error) {
			return nil, "", model.NewInvalidCredentialsError()
		},
	}
	recorder := &mockLoginRecorder{}
	h := NewAuthHandler(service, recorder)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"ghost","password":"wrong-password"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	var resp apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("expected INVALID_CREDENTIALS, got %s", resp.Code)
	}
	if recorder.failures != 1 {
		t.Errorf("expected 1 recorded failure, got %d", recorder.failures)
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestLogin_NilRecorder(t *testing.T) {
	service := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*model.User, string, error) {
			return &model.User{ID: "user-1", Username: username}, "token", nil
		},
	}
	h := NewAuthHandler(service, nil)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"moviefan","password":"supersecret123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
