package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RocinRykor/Movie-API/internal/model"
	"github.com/RocinRykor/Movie-API/internal/repository"
)

// Service はログイン（認証情報検証 → トークン発行）のビジネスロジックを提供する。
// サーバー側セッションは持たず、以降のリクエストはトークン検証のみで認証する。
type Service struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
	issuer   *TokenIssuer
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher *PasswordHasher, issuer *TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

// Login はユーザー名とパスワードを検証し、ユーザーと署名付きトークンを返す。
// ユーザー不在とパスワード不一致はどちらもINVALID_CREDENTIALSとして返し、
// クライアントからは区別できない。
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user for login: %w", err)
	}
	if user == nil {
		slog.Info("login attempt for unknown user", slog.String("username", username))
		return nil, "", model.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		slog.Info("login attempt with wrong password", slog.String("username", username))
		return nil, "", model.NewInvalidCredentialsError()
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}
