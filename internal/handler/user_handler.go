package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RocinRykor/Movie-API/internal/model"
	"github.com/RocinRykor/Movie-API/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register は新規ユーザーを登録する。
	Register(ctx context.Context, input user.RegisterInput) (*model.UserWithFavorites, error)
	// List は全ユーザーの一覧を返す。
	List(ctx context.Context) ([]*model.User, error)
	// GetByUsername は指定ユーザーをお気に入り解決済みで返す。
	GetByUsername(ctx context.Context, username string) (*model.UserWithFavorites, error)
	// Update は指定ユーザーの可変フィールドを置き換える。
	Update(ctx context.Context, username string, input user.UpdateInput) (*model.UserWithFavorites, error)
	// Delete は指定ユーザーを削除する。
	Delete(ctx context.Context, username string) error
	// AddFavorite はお気に入りに映画参照を追加する。
	AddFavorite(ctx context.Context, username, movieID string) (*model.UserWithFavorites, error)
	// RemoveFavorite はお気に入りから映画参照を取り除く。
	RemoveFavorite(ctx context.Context, username, movieID string) (*model.UserWithFavorites, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// userRequest は登録・更新リクエストのボディ。
type userRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday"`
}

// deleteUserResponse はユーザー削除成功時のレスポンス。
type deleteUserResponse struct {
	Message string `json:"message"`
}

// Register は新規ユーザー登録を処理する。
// POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	result, err := h.service.Register(r.Context(), user.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: req.Birthday,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toUserWithFavoritesResponse(result))
}

// ListUsers は全ユーザーの一覧を返す。
// GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]userResponse, 0, len(users))
	for _, u := range users {
		results = append(results, toUserResponse(u))
	}

	writeJSONResponse(w, http.StatusOK, results)
}

// GetUser は指定ユーザーをお気に入り解決済みで返す。
// GET /users/{username}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	result, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserWithFavoritesResponse(result))
}

// UpdateUser は指定ユーザーの可変フィールドを置き換える。
// PUT /users/{username}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	result, err := h.service.Update(r.Context(), username, user.UpdateInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: req.Birthday,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserWithFavoritesResponse(result))
}

// DeleteUser は指定ユーザーを削除する。
// DELETE /users/{username}
// 不在は404になり、成功扱いにはしない。
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.service.Delete(r.Context(), username); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, deleteUserResponse{
		Message: fmt.Sprintf("%s was deleted.", username),
	})
}

// AddFavorite はお気に入りに映画参照を追加する。
// POST /users/{username}/movies/{movieID}
func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	result, err := h.service.AddFavorite(r.Context(), username, movieID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserWithFavoritesResponse(result))
}

// RemoveFavorite はお気に入りから映画参照を取り除く。
// DELETE /users/{username}/movies/{movieID}
func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	result, err := h.service.RemoveFavorite(r.Context(), username, movieID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserWithFavoritesResponse(result))
}
