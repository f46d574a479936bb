package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// mockMovieRepo はMovieRepositoryのモック実装。Upsertのみ使用する。
type mockMovieRepo struct {
	upsertFn func(ctx context.Context, movie *model.Movie) error
}

func (m *mockMovieRepo) List(ctx context.Context) ([]*model.Movie, error) { return nil, nil }
func (m *mockMovieRepo) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	return nil, nil
}
func (m *mockMovieRepo) FindByIDs(ctx context.Context, ids []string) ([]*model.Movie, error) {
	return nil, nil
}
func (m *mockMovieRepo) FindGenreByName(ctx context.Context, name string) (*model.Genre, error) {
	return nil, nil
}
func (m *mockMovieRepo) FindDirectorByName(ctx context.Context, name string) (*model.Director, error) {
	return nil, nil
}
func (m *mockMovieRepo) Upsert(ctx context.Context, movie *model.Movie) error {
	return m.upsertFn(ctx, movie)
}

const sampleSeedJSON = `[
	{
		"Title": "Inception",
		"Description": "A thief who steals <script>alert('x')</script>corporate secrets.",
		"Genre": {"Name": "Thriller", "Description": "Suspenseful <b>films</b>."},
		"Director": {
			"Name": "Christopher Nolan",
			"Bio": "British-American <i>film director</i>.",
			"BirthYear": 1970
		},
		"Actors": ["Leonardo DiCaprio"],
		"ImagePath": "inception.png",
		"Featured": true
	},
	{
		"Title": "The Matrix",
		"Description": "A hacker discovers reality is a simulation.",
		"Genre": {"Name": "Sci-Fi", "Description": "Speculative futures."},
		"Director": {"Name": "Lana Wachowski", "Bio": "American director."},
		"Actors": ["Keanu Reeves", "Carrie-Anne Moss"],
		"ImagePath": "matrix.png",
		"Featured": false
	}
]`

func TestImport_UpsertsAllRecords(t *testing.T) {
	var upserted []*model.Movie
	repo := &mockMovieRepo{
		upsertFn: func(ctx context.Context, movie *model.Movie) error {
			upserted = append(upserted, movie)
			return nil
		},
	}
	importer := NewImporter(repo)

	count, err := importer.Import(context.Background(), strings.NewReader(sampleSeedJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 imported movies, got %d", count)
	}
	if len(upserted) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(upserted))
	}
	first := upserted[0]
	if first.ID == "" {
		t.Error("expected generated movie id")
	}
	if first.Title != "Inception" {
		t.Errorf("expected title Inception, got %q", first.Title)
	}
	if first.Director.BirthYear == nil || *first.Director.BirthYear != 1970 {
		t.Errorf("expected birth year 1970, got %v", first.Director.BirthYear)
	}
	if upserted[1].Director.BirthYear != nil {
		t.Errorf("expected nil birth year when absent, got %v", upserted[1].Director.BirthYear)
	}
}

func TestImport_SanitizesDescriptionsAndBios(t *testing.T) {
	var upserted []*model.Movie
	repo := &mockMovieRepo{
		upsertFn: func(ctx context.Context, movie *model.Movie) error {
			upserted = append(upserted, movie)
			return nil
		},
	}
	importer := NewImporter(repo)

	if _, err := importer.Import(context.Background(), strings.NewReader(sampleSeedJSON)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := upserted[0]
	if strings.Contains(first.Description, "<script>") || strings.Contains(first.Description, "alert") {
		t.Errorf("expected script content to be removed, got %q", first.Description)
	}
	if !strings.Contains(first.Description, "corporate secrets") {
		t.Errorf("expected plain text to survive, got %q", first.Description)
	}
	if strings.Contains(first.Genre.Description, "<b>") {
		t.Errorf("expected genre description tags removed, got %q", first.Genre.Description)
	}
	if strings.Contains(first.Director.Bio, "<i>") {
		t.Errorf("expected bio tags removed, got %q", first.Director.Bio)
	}
	if !strings.Contains(first.Director.Bio, "film director") {
		t.Errorf("expected bio text to survive, got %q", first.Director.Bio)
	}
}

func TestImport_EmptyTitleAborts(t *testing.T) {
	upserts := 0
	repo := &mockMovieRepo{
		upsertFn: func(ctx context.Context, movie *model.Movie) error {
			upserts++
			return nil
		},
	}
	importer := NewImporter(repo)

	input := `[
		{"Title": "Valid Movie", "Genre": {"Name": "Drama"}, "Director": {"Name": "Someone"}},
		{"Title": "  ", "Genre": {"Name": "Drama"}, "Director": {"Name": "Someone"}}
	]`
	count, err := importer.Import(context.Background(), strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	if count != 1 {
		t.Errorf("expected 1 movie imported before abort, got %d", count)
	}
	if upserts != 1 {
		t.Errorf("expected 1 upsert before abort, got %d", upserts)
	}
}

func TestImport_InvalidJSON(t *testing.T) {
	repo := &mockMovieRepo{}
	importer := NewImporter(repo)

	if _, err := importer.Import(context.Background(), strings.NewReader("{not json")); err == nil {
		t.Error("expected error for invalid json")
	}
}
