package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RocinRykor/Movie-API/internal/storage"
)

// ImageServiceInterface は画像ハンドラーが必要とするサービスインターフェース。
type ImageServiceInterface interface {
	// Upload はリクエストボディをそのまま保存する。
	Upload(ctx context.Context, movieID, filename string, body io.Reader, size int64, contentType string) (*storage.ObjectInfo, error)
	// List は指定映画の画像一覧を返す。
	List(ctx context.Context, movieID string) ([]storage.ObjectInfo, error)
	// Get は指定画像の内容とメタデータを返す。
	Get(ctx context.Context, movieID, filename string) (io.ReadCloser, *storage.ObjectInfo, error)
}

// ImageHandler は映画画像のHTTPハンドラー。
type ImageHandler struct {
	service ImageServiceInterface
}

// NewImageHandler はImageHandlerを生成する。
func NewImageHandler(service ImageServiceInterface) *ImageHandler {
	return &ImageHandler{service: service}
}

// imageListResponse は画像一覧のレスポンス。
type imageListResponse struct {
	Images []imageResponse `json:"images"`
}

// Upload は画像アップロードを処理する。
// POST /images/{movieID}/{filename}
// リクエストボディを検証・変換せずそのまま保存する。
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")
	filename := chi.URLParam(r, "filename")

	info, err := h.service.Upload(r.Context(), movieID, filename, r.Body, r.ContentLength, r.Header.Get("Content-Type"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toImageResponse(*info))
}

// List は指定映画の画像一覧を返す。
// GET /images/{movieID}
func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	objects, err := h.service.List(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]imageResponse, 0, len(objects))
	for _, obj := range objects {
		results = append(results, toImageResponse(obj))
	}

	writeJSONResponse(w, http.StatusOK, imageListResponse{Images: results})
}

// Get は指定画像の内容をストリームで返す。
// GET /images/{movieID}/{filename}
func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")
	filename := chi.URLParam(r, "filename")

	body, info, err := h.service.Get(r.Context(), movieID, filename)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	defer body.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		// ヘッダ送信後のためエラーレスポンスは返せない
		slog.Error("failed to stream image",
			slog.String("key", info.Key),
			slog.String("error", err.Error()),
		)
	}
}
