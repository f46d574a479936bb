package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenClaims はJWTに格納するクレームを表す。
// Subjectにはユーザー名、UserIDにはユーザーIDが入る。
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenIssuer は対称鍵（HS256）によるJWTの発行と検証を行う。
// 署名鍵は発行側と検証側で同一でなければならず、設定から渡される。
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer はTokenIssuerを生成する。
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue は指定ユーザーの署名付きトークンを発行する。
// 有効期限は発行時刻 + TTL（デフォルト7日）。
func (i *TokenIssuer) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、クレームを返す。
// HS256以外の署名アルゴリズムは拒否する。
func (i *TokenIssuer) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
