// Package image は映画画像の保存・参照サービスを提供する。
package image

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/RocinRykor/Movie-API/internal/storage"
)

// UploadRecorder は画像アップロードのメトリクス記録に必要なインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type UploadRecorder interface {
	RecordImageUpload()
}

// Service は映画画像のアップロード・一覧・取得を提供する。
// 画像の内容は検証も変換もせず、ストレージへそのまま受け渡す。
type Service struct {
	store    storage.ObjectStore
	recorder UploadRecorder
}

// NewService は新しいServiceを生成する。recorderはnil可。
func NewService(store storage.ObjectStore, recorder UploadRecorder) *Service {
	return &Service{store: store, recorder: recorder}
}

// Upload はリクエストボディをそのまま保存し、保存結果のメタデータを返す。
func (s *Service) Upload(ctx context.Context, movieID, filename string, body io.Reader, size int64, contentType string) (*storage.ObjectInfo, error) {
	info, err := s.store.Upload(ctx, movieID, filename, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordImageUpload()
	}

	slog.Info("image uploaded",
		slog.String("key", info.Key),
		slog.Int64("size", info.Size),
	)

	return info, nil
}

// List は指定映画の画像一覧を返す。該当がない場合は空スライスを返す。
func (s *Service) List(ctx context.Context, movieID string) ([]storage.ObjectInfo, error) {
	objects, err := s.store.List(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	if objects == nil {
		objects = []storage.ObjectInfo{}
	}
	return objects, nil
}

// Get は指定画像の内容とメタデータを返す。呼び出し側がReadCloserを閉じる。
func (s *Service) Get(ctx context.Context, movieID, filename string) (io.ReadCloser, *storage.ObjectInfo, error) {
	return s.store.Get(ctx, movieID, filename)
}
