package handler

import (
	"embed"
	"log/slog"
	"net/http"
)

//go:embed web
var staticFiles embed.FS

// serveStaticFile は埋め込み済み静的ファイルを返すハンドラーを生成する。
func serveStaticFile(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := staticFiles.ReadFile(path)
		if err != nil {
			slog.Error("failed to read embedded static file",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

// IndexHandler はトップページを返す。
// GET /
func IndexHandler() http.HandlerFunc {
	return serveStaticFile("web/index.html", "text/html; charset=utf-8")
}

// DocumentationHandler はAPIドキュメントページを返す。
// GET /documentation
func DocumentationHandler() http.HandlerFunc {
	return serveStaticFile("web/documentation.html", "text/html; charset=utf-8")
}
