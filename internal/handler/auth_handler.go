package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login は認証情報を検証し、ユーザーと署名付きトークンを返す。
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

// LoginRecorder はログイン結果のメトリクス記録に必要なインターフェース。
type LoginRecorder interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// AuthHandler はログインのHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	recorder LoginRecorder
}

// NewAuthHandler はAuthHandlerを生成する。recorderはnil可。
func NewAuthHandler(service AuthServiceInterface, recorder LoginRecorder) *AuthHandler {
	return &AuthHandler{
		service:  service,
		recorder: recorder,
	}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Login はログインを処理する。
// POST /login
// ユーザー不在とパスワード不一致はどちらも400 INVALID_CREDENTIALSになる。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if h.recorder != nil {
			h.recorder.RecordLoginFailure()
		}
		handleServiceError(w, err)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordLoginSuccess()
	}

	writeJSONResponse(w, http.StatusOK, loginResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}
