package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/RocinRykor/Movie-API/internal/metrics"
	"github.com/RocinRykor/Movie-API/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	UserLoader        middleware.UserLoader
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// サービス
	AuthService  AuthServiceInterface
	MovieService MovieServiceInterface
	UserService  UserServiceInterface
	ImageService ImageServiceInterface

	// 運用
	HealthChecker    HealthChecker
	MetricsGatherer  prometheus.Gatherer
	MetricsCollector metrics.MetricsCollector
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 認証が必要なルートはさらに Auth → RateLimit(General) を通過する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsCollector != nil {
		r.Use(metrics.NewHTTPMiddleware(deps.MetricsCollector))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.MetricsCollector)
	movieHandler := NewMovieHandler(deps.MovieService)
	userHandler := NewUserHandler(deps.UserService)
	imageHandler := NewImageHandler(deps.ImageService)

	// --- 認証不要のルート ---

	r.Get("/", IndexHandler())
	r.Get("/documentation", DocumentationHandler())
	r.Get("/health", newHealthHandler(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// ログインは認証前のため接続元IP単位でレート制限する
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.Login)

	// ユーザー登録
	r.Post("/users", userHandler.Register)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, deps.UserLoader))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 映画カタログ（読み取り専用）
		r.Get("/movies", movieHandler.ListMovies)
		r.Get("/movies/{title}", movieHandler.GetMovie)
		r.Get("/genre/{genreTitle}", movieHandler.GetGenre)
		r.Get("/directors/{directorName}", movieHandler.GetDirector)

		// ユーザー管理
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)

			r.Route("/{username}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Put("/", userHandler.UpdateUser)
				r.Delete("/", userHandler.DeleteUser)

				// お気に入り管理
				r.Post("/movies/{movieID}", userHandler.AddFavorite)
				r.Delete("/movies/{movieID}", userHandler.RemoveFavorite)
			})
		})

		// 映画画像
		r.Route("/images/{movieID}", func(r chi.Router) {
			r.Get("/", imageHandler.List)
			r.Post("/{filename}", imageHandler.Upload)
			r.Get("/{filename}", imageHandler.Get)
		})
	})

	return r
}

// newHealthHandler はデータベース疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
