package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresFavoriteRepo はPostgreSQLを使用したお気に入りリポジトリ。
type PostgresFavoriteRepo struct {
	db *sql.DB
}

// NewPostgresFavoriteRepo はPostgresFavoriteRepoを生成する。
func NewPostgresFavoriteRepo(db *sql.DB) *PostgresFavoriteRepo {
	return &PostgresFavoriteRepo{db: db}
}

// Add はお気に入りを追加する。既に存在する場合は何もしない（冪等）。
// movie_idの存在チェックは意図的に行わない。
func (r *PostgresFavoriteRepo) Add(ctx context.Context, userID, movieID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, movie_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, movie_id) DO NOTHING`,
		userID, movieID,
	)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove はお気に入りを削除する。存在しない場合も成功扱いとする（冪等）。
func (r *PostgresFavoriteRepo) Remove(ctx context.Context, userID, movieID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND movie_id = $2`,
		userID, movieID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// ListMovieIDs はユーザーのお気に入り映画ID一覧を追加順で返す。
func (r *PostgresFavoriteRepo) ListMovieIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT movie_id FROM favorites WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return ids, nil
}

// compile-time interface check
var _ FavoriteRepository = (*PostgresFavoriteRepo)(nil)
