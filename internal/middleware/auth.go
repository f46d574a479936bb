// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RocinRykor/Movie-API/internal/model"
)

const bearerPrefix = "Bearer "

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// currentUserContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var currentUserContextKey = contextKey("current_user")

// TokenVerifier はベアラートークンの検証に必要なインターフェース。
// auth.TokenIssuerの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (*TokenClaims, error)
}

// TokenClaims は検証済みトークンから取り出すクレームの最小集合。
type TokenClaims struct {
	UserID   string
	Username string
}

// UserLoader は認証済みユーザーのロードに必要なインターフェース。
// user.Serviceの部分集合として定義する。
type UserLoader interface {
	// LoadByID は指定IDのユーザーをお気に入り解決済みで取得する。
	// 見つからない場合はnilを返す。
	LoadByID(ctx context.Context, id string) (*model.UserWithFavorites, error)
}

// NewAuthMiddleware はAuthorizationヘッダのベアラートークンを検証し、
// 参照先ユーザーをロードしてリクエストコンテキストに注入するミドルウェアを返す。
// サーバー側セッションは持たず、各リクエストが独立に検証を通過する。
// 検証失敗・ユーザー不在はハンドラー実行前に401 Unauthorizedで拒否する。
func NewAuthMiddleware(verifier TokenVerifier, loader UserLoader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダからベアラートークンを取り出す
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}
			tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

			// 2. 署名と有効期限を検証
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. 参照先ユーザーをロード（お気に入り解決済み）
			user, err := loader.LoadByID(r.Context(), claims.UserID)
			if err != nil {
				slog.Error("failed to load user for token",
					slog.String("error", err.Error()),
				)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}
			if user == nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 4. 認証済みユーザーをコンテキストに注入
			ctx := context.WithValue(r.Context(), currentUserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func CurrentUserFromContext(ctx context.Context) (*model.UserWithFavorites, error) {
	user, ok := ctx.Value(currentUserContextKey).(*model.UserWithFavorites)
	if !ok || user == nil {
		return nil, fmt.Errorf("authenticated user not found in context")
	}
	return user, nil
}

// UserIDFromContext はリクエストコンテキストから認証済みユーザーIDを取得する。
// レート制限やロギングなどユーザーIDのみで足りる箇所で使用する。
func UserIDFromContext(ctx context.Context) (string, error) {
	user, err := CurrentUserFromContext(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// ContextWithUser はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.UserWithFavorites) context.Context {
	return context.WithValue(ctx, currentUserContextKey, user)
}
