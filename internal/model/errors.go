// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// バリデーション失敗時はFieldsにフィールド単位の詳細が入る。
type APIError struct {
	Code     string       // エラーコード
	Message  string       // エラーメッセージ
	Category string       // カテゴリ: auth, validation, catalog, user, storage, system
	Action   string       // ユーザー向け対処方法
	Fields   []FieldError // バリデーション失敗の詳細（VALIDATION_FAILEDのみ）
}

// FieldError はリクエストボディの1フィールドに対するバリデーションエラーを表す。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeDuplicateUsername  = "DUPLICATE_USERNAME"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeMovieNotFound      = "MOVIE_NOT_FOUND"
	ErrCodeGenreNotFound      = "GENRE_NOT_FOUND"
	ErrCodeDirectorNotFound   = "DIRECTOR_NOT_FOUND"
	ErrCodeImageNotFound      = "IMAGE_NOT_FOUND"
	ErrCodeInvalidObjectKey   = "INVALID_OBJECT_KEY"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeRateLimited        = "RATE_LIMITED"
)

// NewUnauthorizedError は認証トークン不正エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証トークンが無効または期限切れです。",
		Category: "auth",
		Action:   "再度ログインしてトークンを取得してください。",
	}
}

// NewRateLimitedError はレート制限超過エラーを生成する。
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "リクエストが多すぎます。しばらく待ってから再度お試しください。",
		Category: "system",
		Action:   "Retry-Afterヘッダの秒数だけ待ってから再試行してください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// ユーザー不在とパスワード不一致を意図的に区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
		Action:   "認証情報を確認して再度ログインしてください。",
	}
}

// NewValidationFailedError はフィールド単位の詳細付きバリデーションエラーを生成する。
func NewValidationFailedError(fields []FieldError) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  "リクエスト内容が要件を満たしていません。",
		Category: "validation",
		Action:   "errorsの各フィールドを修正して再度お試しください。",
		Fields:   fields,
	}
}

// NewDuplicateUsernameError はユーザー名重複エラーを生成する。
func NewDuplicateUsernameError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUsername,
		Message:  fmt.Sprintf("ユーザー名は既に使用されています: %s", username),
		Category: "user",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("指定されたユーザーが見つかりません: %s", username),
		Category: "user",
		Action:   "ユーザー名を確認してください。",
	}
}

// NewMovieNotFoundError は映画未検出エラーを生成する。
func NewMovieNotFoundError(title string) *APIError {
	return &APIError{
		Code:     ErrCodeMovieNotFound,
		Message:  fmt.Sprintf("指定された映画が見つかりません: %s", title),
		Category: "catalog",
		Action:   "映画タイトルを確認してください。",
	}
}

// NewGenreNotFoundError はジャンル未検出エラーを生成する。
func NewGenreNotFoundError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeGenreNotFound,
		Message:  fmt.Sprintf("指定されたジャンルが見つかりません: %s", name),
		Category: "catalog",
		Action:   "ジャンル名を確認してください。",
	}
}

// NewDirectorNotFoundError は監督未検出エラーを生成する。
func NewDirectorNotFoundError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeDirectorNotFound,
		Message:  fmt.Sprintf("指定された監督が見つかりません: %s", name),
		Category: "catalog",
		Action:   "監督名を確認してください。",
	}
}

// NewImageNotFoundError は画像未検出エラーを生成する。
func NewImageNotFoundError(key string) *APIError {
	return &APIError{
		Code:     ErrCodeImageNotFound,
		Message:  fmt.Sprintf("指定された画像が見つかりません: %s", key),
		Category: "storage",
		Action:   "映画IDとファイル名を確認してください。",
	}
}

// NewInvalidObjectKeyError はオブジェクトキー不正エラーを生成する。
func NewInvalidObjectKeyError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidObjectKey,
		Message:  fmt.Sprintf("不正なオブジェクトキーです: %s", reason),
		Category: "validation",
		Action:   "映画IDとファイル名に空要素やパス区切りを含めないでください。",
	}
}
