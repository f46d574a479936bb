package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// MovieServiceInterface は映画ハンドラーが必要とするサービスインターフェース。
type MovieServiceInterface interface {
	// ListMovies は全映画の一覧を返す。
	ListMovies(ctx context.Context) ([]*model.Movie, error)
	// GetByTitle は指定タイトルの映画を返す。
	GetByTitle(ctx context.Context, title string) (*model.Movie, error)
	// GetGenre は指定ジャンル名のジャンル情報を返す。
	GetGenre(ctx context.Context, name string) (*model.Genre, error)
	// GetDirector は指定監督名の監督情報を返す。
	GetDirector(ctx context.Context, name string) (*model.Director, error)
}

// MovieHandler は映画カタログ参照のHTTPハンドラー。
type MovieHandler struct {
	service MovieServiceInterface
}

// NewMovieHandler はMovieHandlerを生成する。
func NewMovieHandler(service MovieServiceInterface) *MovieHandler {
	return &MovieHandler{service: service}
}

// ListMovies は全映画の一覧を返す。
// GET /movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		results = append(results, toMovieResponse(m))
	}

	writeJSONResponse(w, http.StatusOK, results)
}

// GetMovie はタイトル指定で映画を返す。
// GET /movies/{title}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	movie, err := h.service.GetByTitle(r.Context(), title)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toMovieResponse(movie))
}

// GetGenre はジャンル名指定でジャンル情報を返す。
// GET /genre/{genreTitle}
func (h *MovieHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "genreTitle")

	genre, err := h.service.GetGenre(r.Context(), name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, genreResponse{
		Name:        genre.Name,
		Description: genre.Description,
	})
}

// GetDirector は監督名指定で監督情報を返す。
// GET /directors/{directorName}
func (h *MovieHandler) GetDirector(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "directorName")

	director, err := h.service.GetDirector(r.Context(), name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, directorResponse{
		Name:      director.Name,
		Bio:       director.Bio,
		BirthYear: director.BirthYear,
		DeathYear: director.DeathYear,
	})
}
