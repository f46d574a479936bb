// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/RocinRykor/Movie-API/internal/model"
	"github.com/RocinRykor/Movie-API/internal/storage"
)

// apiErrorResponse は統一エラーフォーマットのレスポンス。
// バリデーション失敗時のみErrorsが入る。
type apiErrorResponse struct {
	Code     string             `json:"code"`
	Message  string             `json:"message"`
	Category string             `json:"category"`
	Action   string             `json:"action"`
	Errors   []model.FieldError `json:"errors,omitempty"`
}

// genreResponse はジャンル情報のAPIレスポンス。
type genreResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// directorResponse は監督情報のAPIレスポンス。
type directorResponse struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// movieResponse は映画情報のAPIレスポンス。
type movieResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Genre       genreResponse    `json:"genre"`
	Director    directorResponse `json:"director"`
	Actors      []string         `json:"actors"`
	ImagePath   string           `json:"image_path"`
	Featured    bool             `json:"featured"`
}

// userResponse はユーザー情報のAPIレスポンス。
// パスワードハッシュは決して含めない。
type userResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Birthday  *time.Time `json:"birthday"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// userWithFavoritesResponse はお気に入り解決済みユーザーのAPIレスポンス。
// お気に入りが空でもfavorite_moviesキーを出力する。
type userWithFavoritesResponse struct {
	userResponse
	FavoriteMovies []movieResponse `json:"favorite_movies"`
}

// toMovieResponse はmodel.MovieからAPIレスポンスに変換する。
func toMovieResponse(movie *model.Movie) movieResponse {
	actors := movie.Actors
	if actors == nil {
		actors = []string{}
	}
	return movieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre: genreResponse{
			Name:        movie.Genre.Name,
			Description: movie.Genre.Description,
		},
		Director: directorResponse{
			Name:      movie.Director.Name,
			Bio:       movie.Director.Bio,
			BirthYear: movie.Director.BirthYear,
			DeathYear: movie.Director.DeathYear,
		},
		Actors:    actors,
		ImagePath: movie.ImagePath,
		Featured:  movie.Featured,
	}
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Birthday:  user.Birthday,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// toUserWithFavoritesResponse はお気に入り解決済みユーザーをAPIレスポンスに変換する。
func toUserWithFavoritesResponse(user *model.UserWithFavorites) userWithFavoritesResponse {
	favorites := make([]movieResponse, 0, len(user.FavoriteMovies))
	for _, m := range user.FavoriteMovies {
		favorites = append(favorites, toMovieResponse(m))
	}
	return userWithFavoritesResponse{
		userResponse:   toUserResponse(&user.User),
		FavoriteMovies: favorites,
	}
}

// imageResponse は画像メタデータのAPIレスポンス。
type imageResponse struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// toImageResponse はstorage.ObjectInfoからAPIレスポンスに変換する。
func toImageResponse(info storage.ObjectInfo) imageResponse {
	return imageResponse{
		Key:         info.Key,
		Size:        info.Size,
		ContentType: info.ContentType,
	}
}

// writeJSONResponse は指定されたステータスコードでJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSONResponse(w, statusCode, apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
		Errors:   apiErr.Fields,
	})
}

// writeInvalidRequestBody はリクエストボディの解析失敗レスポンスを書き込む。
func writeInvalidRequestBody(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case model.ErrCodeInvalidCredentials, model.ErrCodeDuplicateUsername, model.ErrCodeInvalidObjectKey:
		return http.StatusBadRequest
	case model.ErrCodeUserNotFound, model.ErrCodeMovieNotFound, model.ErrCodeGenreNotFound,
		model.ErrCodeDirectorNotFound, model.ErrCodeImageNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
