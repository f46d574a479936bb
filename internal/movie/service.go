// Package movie は映画カタログの参照サービスを提供する。
package movie

import (
	"context"
	"fmt"

	"github.com/RocinRykor/Movie-API/internal/model"
	"github.com/RocinRykor/Movie-API/internal/repository"
)

// Service は映画カタログの読み取り操作を提供する。
// カタログの書き込みはseedサブコマンドのみが行う。
type Service struct {
	movieRepo repository.MovieRepository
}

// NewService は新しいServiceを生成する。
func NewService(movieRepo repository.MovieRepository) *Service {
	return &Service{movieRepo: movieRepo}
}

// ListMovies は全映画の一覧を返す。カタログが空の場合は空スライスを返す。
func (s *Service) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	if movies == nil {
		movies = []*model.Movie{}
	}
	return movies, nil
}

// GetByTitle は指定タイトルの映画を返す。見つからない場合はMOVIE_NOT_FOUNDを返す。
func (s *Service) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	movie, err := s.movieRepo.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie by title: %w", err)
	}
	if movie == nil {
		return nil, model.NewMovieNotFoundError(title)
	}
	return movie, nil
}

// GetGenre は指定ジャンル名のジャンル情報を返す。見つからない場合はGENRE_NOT_FOUNDを返す。
func (s *Service) GetGenre(ctx context.Context, name string) (*model.Genre, error) {
	genre, err := s.movieRepo.FindGenreByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find genre by name: %w", err)
	}
	if genre == nil {
		return nil, model.NewGenreNotFoundError(name)
	}
	return genre, nil
}

// GetDirector は指定監督名の監督情報を返す。見つからない場合はDIRECTOR_NOT_FOUNDを返す。
func (s *Service) GetDirector(ctx context.Context, name string) (*model.Director, error) {
	director, err := s.movieRepo.FindDirectorByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find director by name: %w", err)
	}
	if director == nil {
		return nil, model.NewDirectorNotFoundError(name)
	}
	return director, nil
}
