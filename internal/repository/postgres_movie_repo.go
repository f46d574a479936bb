package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// PostgresMovieRepo はPostgreSQLを使用した映画カタログリポジトリ。
type PostgresMovieRepo struct {
	db *sql.DB
}

// NewPostgresMovieRepo はPostgresMovieRepoを生成する。
func NewPostgresMovieRepo(db *sql.DB) *PostgresMovieRepo {
	return &PostgresMovieRepo{db: db}
}

const movieColumns = `id, title, description, genre_name, genre_description,
	director_name, director_bio, director_birth_year, director_death_year,
	actors, image_path, featured`

// scanMovie は1行分の映画をスキャンする。
func scanMovie(row interface{ Scan(dest ...any) error }) (*model.Movie, error) {
	movie := &model.Movie{}
	var birthYear, deathYear sql.NullInt64
	err := row.Scan(
		&movie.ID, &movie.Title, &movie.Description,
		&movie.Genre.Name, &movie.Genre.Description,
		&movie.Director.Name, &movie.Director.Bio, &birthYear, &deathYear,
		pq.Array(&movie.Actors), &movie.ImagePath, &movie.Featured,
	)
	if err != nil {
		return nil, err
	}
	if birthYear.Valid {
		y := int(birthYear.Int64)
		movie.Director.BirthYear = &y
	}
	if deathYear.Valid {
		y := int(deathYear.Int64)
		movie.Director.DeathYear = &y
	}
	return movie, nil
}

// List は全映画をタイトル昇順で取得する。
func (r *PostgresMovieRepo) List(ctx context.Context) ([]*model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

// FindByTitle は指定タイトルの映画を取得する。見つからない場合はnilを返す。
func (r *PostgresMovieRepo) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE title = $1`, title)

	movie, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find movie by title: %w", err)
	}
	return movie, nil
}

// FindByIDs は指定ID群の映画をタイトル昇順で取得する。
// 存在しないIDは結果から黙って落ちる。
func (r *PostgresMovieRepo) FindByIDs(ctx context.Context, ids []string) ([]*model.Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ANY($1) ORDER BY title`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find movies by IDs: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

// FindGenreByName はジャンル名からジャンル情報を取得する。見つからない場合はnilを返す。
// 複数の映画が同一ジャンルを持つため1件に限定する。
func (r *PostgresMovieRepo) FindGenreByName(ctx context.Context, name string) (*model.Genre, error) {
	genre := &model.Genre{}
	err := r.db.QueryRowContext(ctx,
		`SELECT genre_name, genre_description FROM movies WHERE genre_name = $1 LIMIT 1`,
		name,
	).Scan(&genre.Name, &genre.Description)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find genre by name: %w", err)
	}
	return genre, nil
}

// FindDirectorByName は監督名から監督情報を取得する。見つからない場合はnilを返す。
func (r *PostgresMovieRepo) FindDirectorByName(ctx context.Context, name string) (*model.Director, error) {
	director := &model.Director{}
	var birthYear, deathYear sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT director_name, director_bio, director_birth_year, director_death_year
		 FROM movies WHERE director_name = $1 LIMIT 1`,
		name,
	).Scan(&director.Name, &director.Bio, &birthYear, &deathYear)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find director by name: %w", err)
	}
	if birthYear.Valid {
		y := int(birthYear.Int64)
		director.BirthYear = &y
	}
	if deathYear.Valid {
		y := int(deathYear.Int64)
		director.DeathYear = &y
	}
	return director, nil
}

// Upsert はタイトルをキーに映画を作成または更新する（seed用）。
func (r *PostgresMovieRepo) Upsert(ctx context.Context, movie *model.Movie) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (id, title, description, genre_name, genre_description,
			director_name, director_bio, director_birth_year, director_death_year,
			actors, image_path, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (title) DO UPDATE SET
			description = EXCLUDED.description,
			genre_name = EXCLUDED.genre_name,
			genre_description = EXCLUDED.genre_description,
			director_name = EXCLUDED.director_name,
			director_bio = EXCLUDED.director_bio,
			director_birth_year = EXCLUDED.director_birth_year,
			director_death_year = EXCLUDED.director_death_year,
			actors = EXCLUDED.actors,
			image_path = EXCLUDED.image_path,
			featured = EXCLUDED.featured`,
		movie.ID, movie.Title, movie.Description,
		movie.Genre.Name, movie.Genre.Description,
		movie.Director.Name, movie.Director.Bio,
		movie.Director.BirthYear, movie.Director.DeathYear,
		pq.Array(movie.Actors), movie.ImagePath, movie.Featured,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert movie: %w", err)
	}
	return nil
}

// collectMovies は結果セットから映画スライスを組み立てる。
func collectMovies(rows *sql.Rows) ([]*model.Movie, error) {
	var movies []*model.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}
	return movies, nil
}

// compile-time interface check
var _ MovieRepository = (*PostgresMovieRepo)(nil)
