// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュであり、APIレスポンスには決して含めない。
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Birthday     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserWithFavorites はお気に入り映画を解決済みのユーザーを表す。
// favoritesテーブルのmovie_idには外部キー制約を張っていないため、
// 映画レコードが存在しない参照は解決時に黙って落ちる。
type UserWithFavorites struct {
	User
	FavoriteMovies []*Movie
}
