// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RocinRykor/Movie-API/internal/model"
	"github.com/RocinRykor/Movie-API/internal/repository"
)

// PasswordHasher はパスワードのハッシュ化に必要なインターフェース。
// auth.PasswordHasherの部分集合として定義する。
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// RegisterInput はユーザー登録リクエストの入力。
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}

// UpdateInput はユーザー更新リクエストの入力。
// PUTセマンティクスのため全可変フィールドを置き換える。
type UpdateInput struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}

// Service はユーザー管理のサービス層。
// 登録・参照・更新・削除・お気に入り管理のビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	movieRepo repository.MovieRepository
	favRepo   repository.FavoriteRepository
	hasher    PasswordHasher
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	movieRepo repository.MovieRepository,
	favRepo repository.FavoriteRepository,
	hasher PasswordHasher,
) *Service {
	return &Service{
		userRepo:  userRepo,
		movieRepo: movieRepo,
		favRepo:   favRepo,
		hasher:    hasher,
	}
}

// Register は新規ユーザーを登録する。
// バリデーション失敗はVALIDATION_FAILED、ユーザー名重複はDUPLICATE_USERNAMEを返す。
// パスワードは平文では保存せず、レスポンスにも含めない。
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.UserWithFavorites, error) {
	if fields := validateCredentials(input.Username, input.Password, input.Email); len(fields) > 0 {
		return nil, model.NewValidationFailedError(fields)
	}

	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateUsernameError(input.Username)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Birthday:     input.Birthday,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &model.UserWithFavorites{User: *user, FavoriteMovies: []*model.Movie{}}, nil
}

// List は全ユーザーの一覧を返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}

// GetByUsername は指定ユーザー名のユーザーをお気に入り解決済みで返す。
// 見つからない場合はUSER_NOT_FOUNDを返す。
func (s *Service) GetByUsername(ctx context.Context, username string) (*model.UserWithFavorites, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(username)
	}
	return s.resolveFavorites(ctx, user)
}

// LoadByID は指定IDのユーザーをお気に入り解決済みで返す。
// 認証ミドルウェアから利用する。見つからない場合はnilを返す。
func (s *Service) LoadByID(ctx context.Context, id string) (*model.UserWithFavorites, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return s.resolveFavorites(ctx, user)
}

// Update は指定ユーザーの可変フィールドを置き換える。
// 対象が見つからない場合はUSER_NOT_FOUND、新しいユーザー名が別ユーザーと
// 衝突する場合はDUPLICATE_USERNAMEを返す。パスワードは再ハッシュする。
func (s *Service) Update(ctx context.Context, username string, input UpdateInput) (*model.UserWithFavorites, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(username)
	}

	if fields := validateCredentials(input.Username, input.Password, input.Email); len(fields) > 0 {
		return nil, model.NewValidationFailedError(fields)
	}

	if input.Username != user.Username {
		existing, err := s.userRepo.FindByUsername(ctx, input.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username availability: %w", err)
		}
		if existing != nil {
			return nil, model.NewDuplicateUsernameError(input.Username)
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Username = input.Username
	user.PasswordHash = hash
	user.Email = input.Email
	user.Birthday = input.Birthday
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("user updated",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return s.resolveFavorites(ctx, user)
}

// Delete は指定ユーザーを削除する。対象が見つからない場合はUSER_NOT_FOUNDを返す。
// 関連するお気に入りはCASCADE削除される。
func (s *Service) Delete(ctx context.Context, username string) error {
	deleted, err := s.userRepo.DeleteByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return model.NewUserNotFoundError(username)
	}

	slog.Info("user deleted", slog.String("username", username))
	return nil
}

// AddFavorite はユーザーのお気に入りに映画参照を追加する。
// 既に登録済みの場合も成功し、重複は発生しない（冪等）。
// 更新後のユーザーをお気に入り解決済みで返す。
func (s *Service) AddFavorite(ctx context.Context, username, movieID string) (*model.UserWithFavorites, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for favorite add: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(username)
	}

	if err := s.favRepo.Add(ctx, user.ID, movieID); err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	return s.resolveFavorites(ctx, user)
}

// RemoveFavorite はユーザーのお気に入りから映画参照を取り除く。
// 登録されていない場合も成功する（冪等）。
// 更新後のユーザーをお気に入り解決済みで返す。
func (s *Service) RemoveFavorite(ctx context.Context, username, movieID string) (*model.UserWithFavorites, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for favorite remove: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(username)
	}

	if err := s.favRepo.Remove(ctx, user.ID, movieID); err != nil {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}

	return s.resolveFavorites(ctx, user)
}

// resolveFavorites はお気に入り映画IDを映画オブジェクトに解決する。
// 参照先が削除済みのIDは結果から黙って落ちる。
func (s *Service) resolveFavorites(ctx context.Context, user *model.User) (*model.UserWithFavorites, error) {
	ids, err := s.favRepo.ListMovieIDs(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite movie ids: %w", err)
	}

	movies := []*model.Movie{}
	if len(ids) > 0 {
		movies, err = s.movieRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve favorite movies: %w", err)
		}
		if movies == nil {
			movies = []*model.Movie{}
		}
	}

	return &model.UserWithFavorites{User: *user, FavoriteMovies: movies}, nil
}
