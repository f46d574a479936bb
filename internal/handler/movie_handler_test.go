package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// mockMovieService はMovieServiceInterfaceのモック実装。
type mockMovieService struct {
	listMoviesFn  func(ctx context.Context) ([]*model.Movie, error)
	getByTitleFn  func(ctx context.Context, title string) (*model.Movie, error)
	getGenreFn    func(ctx context.Context, name string) (*model.Genre, error)
	getDirectorFn func(ctx context.Context, name string) (*model.Director, error)
}

func (m *mockMovieService) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	return m.listMoviesFn(ctx)
}

func (m *mockMovieService) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	return m.getByTitleFn(ctx, title)
}

func (m *mockMovieService) GetGenre(ctx context.Context, name string) (*model.Genre, error) {
	return m.getGenreFn(ctx, name)
}

func (m *mockMovieService) GetDirector(ctx context.Context, name string) (*model.Director, error) {
	return m.getDirectorFn(ctx, name)
}

// newMovieTestRouter はURLパラメータ解決のためchiルーターにハンドラーをマウントする。
func newMovieTestRouter(service MovieServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewMovieHandler(service)
	r.Get("/movies", h.ListMovies)
	r.Get("/movies/{title}", h.GetMovie)
	r.Get("/genre/{genreTitle}", h.GetGenre)
	r.Get("/directors/{directorName}", h.GetDirector)
	return r
}

func TestListMovies_ReturnsJSONArray(t *testing.T) {
	service := &mockMovieService{
		listMoviesFn: func(ctx context.Context) ([]*model.Movie, error) {
			return []*model.Movie{
				{ID: "m1", Title: "Inception", Genre: model.Genre{Name: "Thriller"}},
				{ID: "m2", Title: "The Matrix", Genre: model.Genre{Name: "Sci-Fi"}},
			}, nil
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var movies []movieResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &movies); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Title != "Inception" {
		t.Errorf("expected Inception, got %q", movies[0].Title)
	}
}

func TestListMovies_EmptyCatalogReturnsEmptyArray(t *testing.T) {
	service := &mockMovieService{
		listMoviesFn: func(ctx context.Context) ([]*model.Movie, error) {
			return []*model.Movie{}, nil
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// nullではなく[]を返す
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestGetMovie_ByTitle(t *testing.T) {
	birthYear := 1970
	service := &mockMovieService{
		getByTitleFn: func(ctx context.Context, title string) (*model.Movie, error) {
			if title != "Inception" {
				t.Errorf("expected title Inception, got %q", title)
			}
			return &model.Movie{
				ID:    "m1",
				Title: "Inception",
				Genre: model.Genre{Name: "Thriller", Description: "Suspense."},
				Director: model.Director{
					Name:      "Christopher Nolan",
					BirthYear: &birthYear,
				},
				Actors: []string{"Leonardo DiCaprio"},
			}, nil
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/movies/Inception", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var movie movieResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &movie); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if movie.Director.Name != "Christopher Nolan" {
		t.Errorf("expected director Christopher Nolan, got %q", movie.Director.Name)
	}
	if movie.Director.BirthYear == nil || *movie.Director.BirthYear != 1970 {
		t.Errorf("expected birth year 1970, got %v", movie.Director.BirthYear)
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	service := &mockMovieService{
		getByTitleFn: func(ctx context.Context, title string) (*model.Movie, error) {
			return nil, model.NewMovieNotFoundError(title)
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/movies/Unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var resp apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != model.ErrCodeMovieNotFound {
		t.Errorf("expected MOVIE_NOT_FOUND, got %s", resp.Code)
	}
}

func TestGetGenre_ByName(t *testing.T) {
	service := &mockMovieService{
		getGenreFn: func(ctx context.Context, name string) (*model.Genre, error) {
			return &model.Genre{Name: name, Description: "Suspenseful films."}, nil
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/genre/Thriller", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var genre genreResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &genre); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if genre.Name != "Thriller" {
		t.Errorf("expected Thriller, got %q", genre.Name)
	}
}

func TestGetGenre_NotFound(t *testing.T) {
	service := &mockMovieService{
		getGenreFn: func(ctx context.Context, name string) (*model.Genre, error) {
			return nil, model.NewGenreNotFoundError(name)
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/genre/Unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestGetDirector_ByName(t *testing.T) {
	service := &mockMovieService{
		getDirectorFn: func(ctx context.Context, name string) (*model.Director, error) {
			return &model.Director{Name: name, Bio: "British-American film director."}, nil
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/directors/Christopher%20Nolan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var director directorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &director); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if director.Bio == "" {
		t.Error("expected bio to be present")
	}
}

func TestGetDirector_NotFound(t *testing.T) {
	service := &mockMovieService{
		getDirectorFn: func(ctx context.Context, name string) (*model.Director, error) {
			return nil, model.NewDirectorNotFoundError(name)
		},
	}
	router := newMovieTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/directors/Unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
