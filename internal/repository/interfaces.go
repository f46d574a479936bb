// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// List は全ユーザーを取得する。
	List(ctx context.Context) ([]*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーの可変フィールド（username, password_hash, email, birthday）を
	// IDをキーに置き換える。
	Update(ctx context.Context, user *model.User) error

	// DeleteByUsername は指定ユーザー名のユーザーを削除する。
	// 削除が行われたかどうかを返す（不在と削除成功を区別するため）。
	// 関連するfavoritesはCASCADE削除される。
	DeleteByUsername(ctx context.Context, username string) (bool, error)
}

// MovieRepository は映画カタログの永続化インターフェース。
// HTTP経由のカタログは読み取り専用であり、書き込みはseedサブコマンドのみが行う。
type MovieRepository interface {
	// List は全映画を取得する。
	List(ctx context.Context) ([]*model.Movie, error)

	// FindByTitle は指定タイトルの映画を取得する。見つからない場合はnilを返す。
	FindByTitle(ctx context.Context, title string) (*model.Movie, error)

	// FindByIDs は指定ID群の映画を取得する。
	// 存在しないIDは結果から黙って落ちる（お気に入り解決で使用）。
	FindByIDs(ctx context.Context, ids []string) ([]*model.Movie, error)

	// FindGenreByName はジャンル名からジャンル情報を取得する。見つからない場合はnilを返す。
	FindGenreByName(ctx context.Context, name string) (*model.Genre, error)

	// FindDirectorByName は監督名から監督情報を取得する。見つからない場合はnilを返す。
	FindDirectorByName(ctx context.Context, name string) (*model.Director, error)

	// Upsert はタイトルをキーに映画を作成または更新する（seed用）。
	Upsert(ctx context.Context, movie *model.Movie) error
}

// FavoriteRepository はお気に入り映画参照の永続化インターフェース。
// movie_idの存在チェックは行わない（既知のギャップ、DESIGN.md参照）。
type FavoriteRepository interface {
	// Add はお気に入りを追加する。既に存在する場合は何もしない（冪等）。
	Add(ctx context.Context, userID, movieID string) error

	// Remove はお気に入りを削除する。存在しない場合も何もせず成功する（冪等）。
	Remove(ctx context.Context, userID, movieID string) error

	// ListMovieIDs はユーザーのお気に入り映画ID一覧を返す。
	ListMovieIDs(ctx context.Context, userID string) ([]string, error)
}
