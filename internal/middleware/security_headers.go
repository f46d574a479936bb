package middleware

import "net/http"

// NewSecurityHeadersMiddleware はセキュリティ関連のHTTPレスポンスヘッダーを付与するミドルウェアを返す。
// 静的ページ（/ と /documentation）も同じチェーンを通るため全レスポンスに適用する。
func NewSecurityHeadersMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			// 静的ページはインラインstyleを使うためstyle-srcのみ緩める
			w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
			next.ServeHTTP(w, r)
		})
	}
}
