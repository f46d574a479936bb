// Package seed は映画カタログJSONの取り込みを提供する。
// カタログはHTTP経由では読み取り専用であり、投入はseedサブコマンドのみが行う。
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/RocinRykor/Movie-API/internal/model"
	"github.com/RocinRykor/Movie-API/internal/repository"
)

// seedGenre は取り込みJSONのジャンル表現。
type seedGenre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// seedDirector は取り込みJSONの監督表現。
type seedDirector struct {
	Name      string `json:"Name"`
	Bio       string `json:"Bio"`
	BirthYear *int   `json:"BirthYear"`
	DeathYear *int   `json:"DeathYear"`
}

// seedMovie は取り込みJSONの映画表現。
type seedMovie struct {
	Title       string       `json:"Title"`
	Description string       `json:"Description"`
	Genre       seedGenre    `json:"Genre"`
	Director    seedDirector `json:"Director"`
	Actors      []string     `json:"Actors"`
	ImagePath   string       `json:"ImagePath"`
	Featured    bool         `json:"Featured"`
}

// Importer は映画カタログJSONの取り込みを実行する。
// 説明文と経歴はHTMLを全て除去してプレーンテキストとして保存する
// （カタログデータは外部由来のため、表示時ではなく保存前に無害化する）。
type Importer struct {
	movieRepo repository.MovieRepository
	policy    *bluemonday.Policy
}

// NewImporter は新しいImporterを生成する。
func NewImporter(movieRepo repository.MovieRepository) *Importer {
	return &Importer{
		movieRepo: movieRepo,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Import はJSON配列を読み取り、タイトルをキーに映画をアップサートする。
// 取り込んだ件数を返す。タイトルが空のレコードはエラーとして全体を中断する。
func (i *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	var records []seedMovie
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("failed to decode seed json: %w", err)
	}

	count := 0
	for idx, record := range records {
		if strings.TrimSpace(record.Title) == "" {
			return count, fmt.Errorf("seed record %d has an empty title", idx)
		}

		movie := &model.Movie{
			ID:          uuid.NewString(),
			Title:       record.Title,
			Description: i.sanitize(record.Description),
			Genre: model.Genre{
				Name:        record.Genre.Name,
				Description: i.sanitize(record.Genre.Description),
			},
			Director: model.Director{
				Name:      record.Director.Name,
				Bio:       i.sanitize(record.Director.Bio),
				BirthYear: record.Director.BirthYear,
				DeathYear: record.Director.DeathYear,
			},
			Actors:    record.Actors,
			ImagePath: record.ImagePath,
			Featured:  record.Featured,
		}

		if err := i.movieRepo.Upsert(ctx, movie); err != nil {
			return count, fmt.Errorf("failed to upsert movie %q: %w", movie.Title, err)
		}
		count++
	}

	slog.Info("movie catalog seeded", slog.Int("count", count))
	return count, nil
}

// sanitize はHTMLタグを全て除去し、前後の空白を取り除く。
func (i *Importer) sanitize(s string) string {
	return strings.TrimSpace(i.policy.Sanitize(s))
}
