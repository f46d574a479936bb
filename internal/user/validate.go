package user

import (
	"fmt"
	"net/mail"
	"regexp"

	"github.com/RocinRykor/Movie-API/internal/model"
)

const (
	minUsernameLength = 3
	minPasswordLength = 10
)

var alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// validateCredentials は登録・更新リクエストのフィールドを検証し、
// フィールド単位のエラー一覧を返す。問題がなければ空を返す。
func validateCredentials(username, password, email string) []model.FieldError {
	var fields []model.FieldError

	if len(username) < minUsernameLength {
		fields = append(fields, model.FieldError{
			Field:   "username",
			Message: fmt.Sprintf("ユーザー名は%d文字以上で指定してください。", minUsernameLength),
		})
	} else if !alphanumericPattern.MatchString(username) {
		fields = append(fields, model.FieldError{
			Field:   "username",
			Message: "ユーザー名は英数字のみ使用できます。",
		})
	}

	if len(password) < minPasswordLength {
		fields = append(fields, model.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("パスワードは%d文字以上で指定してください。", minPasswordLength),
		})
	}

	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, model.FieldError{
			Field:   "email",
			Message: "メールアドレスの形式が正しくありません。",
		})
	}

	return fields
}
