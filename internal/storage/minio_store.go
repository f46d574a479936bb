package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// MinioStore はMinIO（S3互換）をバックエンドとするObjectStore実装。
type MinioStore struct {
	client *minio.Client
	bucket string
}

// インターフェース実装の確認
var _ ObjectStore = (*MinioStore)(nil)

// MinioConfig はMinIO接続の設定を保持する。
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStore はMinIOクライアントを生成してMinioStoreを返す。
// バケットが存在しない場合は作成する。
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	store := &MinioStore{client: client, bucket: cfg.Bucket}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// ensureBucket はバケットの存在を確認し、なければ作成する。
func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload は画像をそのまま保存する。
func (s *MinioStore) Upload(ctx context.Context, movieID, filename string, body io.Reader, size int64, contentType string) (*ObjectInfo, error) {
	key, err := BuildObjectKey(movieID, filename)
	if err != nil {
		return nil, err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return &ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

// List は指定映画の画像一覧を返す。
func (s *MinioStore) List(ctx context.Context, movieID string) ([]ObjectInfo, error) {
	if err := validateKeySegment("movieID", movieID); err != nil {
		return nil, err
	}

	objects := []ObjectInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    movieID + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects for movie %s: %w", movieID, obj.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:         obj.Key,
			Size:        obj.Size,
			ContentType: obj.ContentType,
		})
	}

	return objects, nil
}

// Get は画像の内容とメタデータを返す。
func (s *MinioStore) Get(ctx context.Context, movieID, filename string) (io.ReadCloser, *ObjectInfo, error) {
	key, err := BuildObjectKey(movieID, filename)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}

	// GetObjectは遅延評価のためStatで存在を確認する
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil, model.NewImageNotFoundError(key)
		}
		return nil, nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	return obj, &ObjectInfo{
		Key:         key,
		Size:        stat.Size,
		ContentType: stat.ContentType,
	}, nil
}
