// Package storage は映画画像のオブジェクトストレージ操作を提供する。
package storage

import (
	"context"
	"io"
	"strings"

	"github.com/RocinRykor/Movie-API/internal/model"
)

// ObjectInfo はストレージ内のオブジェクトのメタデータを表す。
type ObjectInfo struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// ObjectStore は映画画像の保存・一覧・取得に必要なインターフェース。
// オブジェクトキーは「映画ID/ファイル名」の2階層で構成する。
type ObjectStore interface {
	// Upload は画像をそのまま保存する。内容の検証や変換は行わない。
	Upload(ctx context.Context, movieID, filename string, body io.Reader, size int64, contentType string) (*ObjectInfo, error)

	// List は指定映画の画像一覧を返す。該当がない場合は空スライスを返す。
	List(ctx context.Context, movieID string) ([]ObjectInfo, error)

	// Get は画像の内容を返す。呼び出し側がReadCloserを閉じる。
	// オブジェクトが存在しない場合はIMAGE_NOT_FOUNDのAPIErrorを返す。
	Get(ctx context.Context, movieID, filename string) (io.ReadCloser, *ObjectInfo, error)
}

// BuildObjectKey は映画IDとファイル名からオブジェクトキーを組み立てる。
// 空要素やパス区切り文字を含むセグメントは拒否する。
func BuildObjectKey(movieID, filename string) (string, error) {
	if err := validateKeySegment("movieID", movieID); err != nil {
		return "", err
	}
	if err := validateKeySegment("filename", filename); err != nil {
		return "", err
	}
	return movieID + "/" + filename, nil
}

// validateKeySegment はキーの1セグメントを検証する。
// キー空間の他領域への脱出を防ぐため、区切り文字と相対パス要素を拒否する。
func validateKeySegment(name, segment string) error {
	switch {
	case segment == "":
		return model.NewInvalidObjectKeyError(name + " is empty")
	case strings.ContainsAny(segment, "/\\"):
		return model.NewInvalidObjectKeyError(name + " contains a path separator")
	case segment == "." || segment == "..":
		return model.NewInvalidObjectKeyError(name + " is a relative path element")
	}
	return nil
}
